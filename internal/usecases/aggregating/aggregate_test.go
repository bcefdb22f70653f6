package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

func TestWeeklyTotalEqualsSumOfDailyTotals(t *testing.T) {
	ledger := domain.Ledger{
		"Alice": {Monday: 100, Tuesday: 200, Wednesday: 0, Thursday: 50, Friday: 10},
		"Bob":   {Monday: 5, Tuesday: 0, Wednesday: 30, Thursday: 0, Friday: 15},
	}

	var sum float64
	for _, day := range domain.Weekdays() {
		sum += DailyTotal(ledger, day)
	}

	assert.Equal(t, WeeklyTotal(ledger), sum)
	assert.Equal(t, 410.0, sum)
}

func TestPerEmployeeTotals(t *testing.T) {
	ledger := domain.Ledger{
		"Alice": {Monday: 10, Friday: 20},
		"Bob":   {Wednesday: 5},
	}

	totals := PerEmployeeTotals(ledger)

	assert.Equal(t, 30.0, totals["Alice"])
	assert.Equal(t, 5.0, totals["Bob"])
}

func TestRollup(t *testing.T) {
	period := Period{
		Start: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		snapshots []*domain.DailySnapshot
		expected  float64
		wantErr   bool
	}{
		{
			name:      "Sem snapshots o total é zero",
			snapshots: nil,
			expected:  0,
		},
		{
			name: "Soma os valores dentro do período",
			snapshots: []*domain.DailySnapshot{
				{Date: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), Value: 100},
				{Date: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), Value: 57.5},
			},
			expected: 157.5,
		},
		{
			name: "Snapshot fora do período é consulta mal formada",
			snapshots: []*domain.DailySnapshot{
				{Date: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), Value: 10},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := Rollup(tt.snapshots, period)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, total)
		})
	}
}

func TestMonthlyWeekBuckets(t *testing.T) {
	// Janeiro de 2025 começa numa quarta-feira: o balde 0 cobre apenas os
	// dias 1 a 5 e o mês tem cinco semanas de calendário.
	snapshots := []*domain.DailySnapshot{
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Value: 10},
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Value: 20},
		{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Value: 100},
		{Date: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), Value: 7},
	}

	buckets, err := MonthlyWeekBuckets(snapshots, 2025, time.January)

	assert.NoError(t, err)
	assert.Len(t, buckets, 5)
	assert.Equal(t, 30.0, buckets[0])
	assert.Equal(t, 100.0, buckets[1])
	assert.Equal(t, 7.0, buckets[4])
}

func TestMonthlyWeekBucketsRejectsOtherMonths(t *testing.T) {
	snapshots := []*domain.DailySnapshot{
		{Date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), Value: 10},
	}

	_, err := MonthlyWeekBuckets(snapshots, 2025, time.January)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPeriodContainsIgnoresTime(t *testing.T) {
	period := Period{
		Start: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)

	assert.True(t, period.Contains(time.Date(2025, 9, 12, 23, 59, 0, 0, saoPaulo)))
	assert.False(t, period.Contains(time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC)))
}
