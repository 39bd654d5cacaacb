package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rounding strategy tokens understood by ApplyPolicy. Anything else behaves
// like StrategyNormal.
const (
	StrategyNormal = "NORMAL"
	StrategyX90    = "X90"
	StrategyX99    = "X99"
)

var (
	ending90 = decimal.RequireFromString("0.90")
	ending99 = decimal.RequireFromString("0.99")
)

// NormalizeStrategy trims and upper-cases a strategy token; blank means NORMAL.
func NormalizeStrategy(strategy string) string {
	s := strings.ToUpper(strings.TrimSpace(strategy))
	if s == "" {
		return StrategyNormal
	}
	return s
}

// ApplyPolicy applies the commercial price ending and the minimum-price floor
// to r. When the price moves, the whole result is re-derived from the new
// price so every downstream figure stays consistent.
func ApplyPolicy(p PurchaseInput, s SaleInput, r Result, strategy string, minPrice decimal.Decimal) Result {
	price := r.SalePrice

	switch NormalizeStrategy(strategy) {
	case StrategyX90:
		price = priceEnding(price, ending90)
	case StrategyX99:
		price = priceEnding(price, ending99)
	}

	if minPrice.IsPositive() && price.LessThan(minPrice) {
		price = minPrice
	}

	if price.Equal(r.SalePrice) {
		return r
	}
	return CalculateFromPrice(p, s, price)
}

// priceEnding moves price to the nearest {int}.ending at or above it.
func priceEnding(price, ending decimal.Decimal) decimal.Decimal {
	adjusted := price.Truncate(0).Add(ending)
	if adjusted.LessThan(price) {
		adjusted = adjusted.Add(one)
	}
	return adjusted
}
