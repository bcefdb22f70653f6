package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formata um valor monetário no padrão brasileiro: milhar com
// ponto, decimal com vírgula, sempre duas casas (ex: "1.234,56"). Entradas
// não numéricas formatam como "0,00".
func FormatBRL(value any) string {
	amount, ok := toDecimal(value)
	if !ok {
		return "0,00"
	}

	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	b.WriteByte(',')
	b.WriteString(decPart)

	return b.String()
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return parsed, true
	default:
		return decimal.Decimal{}, false
	}
}
