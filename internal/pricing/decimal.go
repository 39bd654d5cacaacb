// Package pricing computes resale prices under a value-added-tax regime.
// Everything in this package is pure: no I/O, no shared state, safe to call
// from any goroutine.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	// maxSaleTaxFraction is the combined sale-side tax load at which the
	// margin-driven formula stops being solvable.
	maxSaleTaxFraction = decimal.RequireFromString("0.9999")
)

var commercialNoise = strings.NewReplacer(
	"R$", "",
	"r$", "",
	"%", "",
	" ", "",
	"\u00a0", "",
)

// maxFractionDigits bounds the precision Parse accepts.
const maxFractionDigits = 20

// Parse normalizes user-entered commercial text ("R$ 1.234,56", "25,5%",
// "1,234.56") or a JSON number into a decimal. It never fails: nil, blank,
// unparseable, negative, exponent-notation and over-precise (more than
// maxFractionDigits fraction digits) inputs all yield def.
func Parse(value any, def decimal.Decimal) decimal.Decimal {
	var text string
	switch v := value.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return def
		}
		return *v
	case string:
		text = v
	case float64:
		text = decimal.NewFromFloat(v).String()
	case float32:
		text = decimal.NewFromFloat32(v).String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		text = fmt.Sprintf("%d", v)
	case fmt.Stringer:
		text = v.String()
	default:
		return def
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return def
	}
	text = commercialNoise.Replace(text)

	lastComma := strings.LastIndex(text, ",")
	lastDot := strings.LastIndex(text, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			text = strings.ReplaceAll(text, ".", "")
			text = strings.ReplaceAll(text, ",", ".")
		} else {
			text = strings.ReplaceAll(text, ",", "")
		}
	case lastComma >= 0:
		text = strings.ReplaceAll(text, ",", ".")
	}

	// Exponent notation can describe values whose rounding allocates without
	// bound ("1e200000000"); commercial input never uses it.
	if strings.ContainsAny(text, "eE") {
		return def
	}
	parsed, err := decimal.NewFromString(text)
	if err != nil || parsed.IsNegative() || parsed.Exponent() < -maxFractionDigits {
		return def
	}
	return parsed
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// RoundPct rounds a percentage half away from zero to two fraction digits.
func RoundPct(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// rateFraction turns a percentage into a fraction; non-positive rates count as zero.
func rateFraction(ratePct decimal.Decimal) decimal.Decimal {
	if !ratePct.IsPositive() {
		return decimal.Zero
	}
	return ratePct.Div(hundred)
}
