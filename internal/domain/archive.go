package domain

import "time"

// DailySnapshot é o registro imutável do valor vendido por um vendedor em um
// dia de calendário. Criado uma vez por vendedor por dia pelo arquivamento
// diário; nunca atualizado.
type DailySnapshot struct {
	ID           int       `json:"id"`
	EmployeeName string    `json:"employee_name"`
	Date         time.Time `json:"date"`
	Weekday      Weekday   `json:"weekday"`
	Value        float64   `json:"value"`
	BatchID      string    `json:"batch_id"` // agrupa os snapshots de uma mesma execução
	CreatedAt    time.Time `json:"created_at"`
}

// SellerTotal é uma entrada do breakdown de um resumo semanal.
type SellerTotal struct {
	Seller string  `json:"seller"`
	Total  float64 `json:"total"`
}

// WeeklySummary é o resumo imutável de uma semana fechada, com o total geral
// e o breakdown por vendedor no momento do fechamento.
type WeeklySummary struct {
	ID        int           `json:"id"`
	WeekLabel string        `json:"week_label"` // Ex: "2025-09-08 a 2025-09-12"
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Total     float64       `json:"total"`
	Breakdown []SellerTotal `json:"breakdown"`
	CreatedAt time.Time     `json:"created_at"`
}
