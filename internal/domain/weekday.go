// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"fmt"
	"time"
)

// Weekday representa um dia útil da semana comercial (segunda a sexta).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays retorna os dias úteis em ordem (segunda → sexta).
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// String retorna a chave do dia usada na API e no banco (ex: "monday").
func (d Weekday) String() string {
	switch d {
	case Monday:
		return "monday"
	case Tuesday:
		return "tuesday"
	case Wednesday:
		return "wednesday"
	case Thursday:
		return "thursday"
	case Friday:
		return "friday"
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// PortugueseName retorna o nome do dia usado em rótulos (ex: "segunda").
func (d Weekday) PortugueseName() string {
	switch d {
	case Monday:
		return "segunda"
	case Tuesday:
		return "terca"
	case Wednesday:
		return "quarta"
	case Thursday:
		return "quinta"
	case Friday:
		return "sexta"
	}
	return ""
}

// ParseWeekday converte a chave da API ("monday".."friday") em Weekday.
func ParseWeekday(s string) (Weekday, error) {
	switch s {
	case "monday":
		return Monday, nil
	case "tuesday":
		return Tuesday, nil
	case "wednesday":
		return Wednesday, nil
	case "thursday":
		return Thursday, nil
	case "friday":
		return Friday, nil
	}
	return 0, fmt.Errorf("dia da semana inválido: %q", s)
}

// WeekdayFromTime mapeia uma data para o dia útil correspondente.
// Retorna false para sábado e domingo.
func WeekdayFromTime(t time.Time) (Weekday, bool) {
	switch t.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	default:
		return 0, false
	}
}

// MarshalText serializa o Weekday como a chave da API, inclusive quando
// usado como chave de mapa em JSON.
func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText aceita as chaves da API ("monday".."friday").
func (d *Weekday) UnmarshalText(data []byte) error {
	parsed, err := ParseWeekday(string(data))
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
