package domain

// WeekValues guarda o valor vendido por dia útil para um vendedor.
type WeekValues struct {
	Monday    float64 `json:"monday"`
	Tuesday   float64 `json:"tuesday"`
	Wednesday float64 `json:"wednesday"`
	Thursday  float64 `json:"thursday"`
	Friday    float64 `json:"friday"`
}

// Value retorna o valor registrado para o dia informado.
func (v WeekValues) Value(day Weekday) float64 {
	switch day {
	case Monday:
		return v.Monday
	case Tuesday:
		return v.Tuesday
	case Wednesday:
		return v.Wednesday
	case Thursday:
		return v.Thursday
	case Friday:
		return v.Friday
	}
	return 0
}

// SetValue registra o valor para o dia informado.
func (v *WeekValues) SetValue(day Weekday, value float64) {
	switch day {
	case Monday:
		v.Monday = value
	case Tuesday:
		v.Tuesday = value
	case Wednesday:
		v.Wednesday = value
	case Thursday:
		v.Thursday = value
	case Friday:
		v.Friday = value
	}
}

// Total soma os cinco dias úteis do vendedor.
func (v WeekValues) Total() float64 {
	return v.Monday + v.Tuesday + v.Wednesday + v.Thursday + v.Friday
}

// Ledger é a planilha viva: um WeekValues por vendedor.
type Ledger map[string]WeekValues
