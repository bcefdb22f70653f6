package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Weekday
		wantErr  bool
	}{
		{name: "Segunda-feira", input: "monday", expected: Monday},
		{name: "Sexta-feira", input: "friday", expected: Friday},
		{name: "Dia desconhecido", input: "saturday", wantErr: true},
		{name: "String vazia", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseWeekday(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, day)
		})
	}
}

func TestWeekdayFromTime(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected Weekday
		ok       bool
	}{
		{
			name:     "Segunda-feira é dia útil",
			date:     time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC),
			expected: Monday,
			ok:       true,
		},
		{
			name:     "Sexta-feira é dia útil",
			date:     time.Date(2025, 9, 12, 18, 20, 0, 0, time.UTC),
			expected: Friday,
			ok:       true,
		},
		{
			name: "Sábado não tem coluna na planilha",
			date: time.Date(2025, 9, 13, 12, 0, 0, 0, time.UTC),
			ok:   false,
		},
		{
			name: "Domingo não tem coluna na planilha",
			date: time.Date(2025, 9, 14, 12, 0, 0, 0, time.UTC),
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := WeekdayFromTime(tt.date)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, day)
			}
		})
	}
}

func TestWeekdayMarshalText(t *testing.T) {
	for _, day := range Weekdays() {
		text, err := day.MarshalText()
		assert.NoError(t, err)

		var parsed Weekday
		assert.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, day, parsed)
	}
}

func TestWeekValues(t *testing.T) {
	var values WeekValues
	values.SetValue(Monday, 100)
	values.SetValue(Wednesday, 50.5)

	assert.Equal(t, 100.0, values.Value(Monday))
	assert.Equal(t, 0.0, values.Value(Tuesday))
	assert.Equal(t, 150.5, values.Total())
}
