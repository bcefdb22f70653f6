package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "Valor com centavos", value: 1234.5, expected: "1.234,50"},
		{name: "Zero", value: 0.0, expected: "0,00"},
		{name: "Inteiro", value: 1000000, expected: "1.000.000,00"},
		{name: "Valor pequeno", value: 7.0, expected: "7,00"},
		{name: "Três dígitos sem separador de milhar", value: 999.99, expected: "999,99"},
		{name: "Negativo", value: -1234.5, expected: "-1.234,50"},
		{name: "String numérica", value: "2500.75", expected: "2.500,75"},
		{name: "Decimal", value: decimal.NewFromFloat(42.1), expected: "42,10"},
		{name: "String inválida formata como zero", value: "abc", expected: "0,00"},
		{name: "Tipo não numérico formata como zero", value: struct{}{}, expected: "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBRL(tt.value))
		})
	}
}
