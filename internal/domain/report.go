package domain

import "time"

// ResumoReport é o relatório agregado exibido na tela de resumo: totais do
// dia, da semana e do mês correntes, o histórico por dia útil da semana e os
// totais por semana do mês.
type ResumoReport struct {
	Date         time.Time           `json:"date"`
	DayTotal     float64             `json:"day_total"`
	WeekTotal    float64             `json:"week_total"`
	MonthTotal   float64             `json:"month_total"`
	WeekdayTotal map[Weekday]float64 `json:"weekday_totals"`
	WeekBuckets  []float64           `json:"week_buckets"` // um total por semana do mês corrente
	Month        string              `json:"month"`        // formato yyyy-mm
}
