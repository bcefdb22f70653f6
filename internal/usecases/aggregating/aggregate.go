// Package aggregating concentra os cálculos de totais sobre a planilha viva
// e sobre os snapshots diários arquivados. Todas as funções deste arquivo são
// puras: recebem os dados e devolvem somas, sem tocar no banco.
package aggregating

import (
	"fmt"
	"time"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// Period delimita um intervalo de datas fechado [Start, End], comparado só
// pela data de calendário.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains verifica se a data (ignorando horário) está dentro do período.
func (p Period) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)

	return !day.Before(start) && !day.After(end)
}

// DailyTotal soma o valor de um dia útil entre todos os vendedores.
func DailyTotal(ledger domain.Ledger, day domain.Weekday) float64 {
	var total float64
	for _, values := range ledger {
		total += values.Value(day)
	}
	return total
}

// WeeklyTotal soma os cinco dias úteis de todos os vendedores.
func WeeklyTotal(ledger domain.Ledger) float64 {
	var total float64
	for _, values := range ledger {
		total += values.Total()
	}
	return total
}

// PerEmployeeTotals calcula o total semanal de cada vendedor.
func PerEmployeeTotals(ledger domain.Ledger) map[string]float64 {
	totals := make(map[string]float64, len(ledger))
	for name, values := range ledger {
		totals[name] = values.Total()
	}
	return totals
}

// Rollup soma o valor dos snapshots dentro do período. Um snapshot fora do
// período indica uma consulta mal formada e devolve ErrInvalidInput.
func Rollup(snapshots []*domain.DailySnapshot, period Period) (float64, error) {
	var total float64
	for _, snapshot := range snapshots {
		if !period.Contains(snapshot.Date) {
			return 0, fmt.Errorf("%w: snapshot de %s fora do período %s a %s",
				ErrInvalidInput,
				snapshot.Date.Format(time.DateOnly),
				period.Start.Format(time.DateOnly),
				period.End.Format(time.DateOnly),
			)
		}
		total += snapshot.Value
	}
	return total, nil
}

// MonthlyWeekBuckets particiona os snapshots de um mês em semanas de
// calendário (semana começa na segunda) e soma cada balde. Um mês que começa
// no meio da semana tem a semana parcial como balde 0.
func MonthlyWeekBuckets(snapshots []*domain.DailySnapshot, year int, month time.Month) ([]float64, error) {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()

	// Deslocamento do primeiro dia dentro da semana (segunda = 0).
	offset := (int(firstDay.Weekday()) + 6) % 7

	bucketCount := (daysInMonth + offset + 6) / 7
	buckets := make([]float64, bucketCount)

	for _, snapshot := range snapshots {
		if snapshot.Date.Year() != year || snapshot.Date.Month() != month {
			return nil, fmt.Errorf("%w: snapshot de %s fora do mês %04d-%02d",
				ErrInvalidInput, snapshot.Date.Format(time.DateOnly), year, int(month))
		}

		index := (snapshot.Date.Day() + offset - 1) / 7
		buckets[index] += snapshot.Value
	}

	return buckets, nil
}
