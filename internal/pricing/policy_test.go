package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markupFixture(t *testing.T) (PurchaseInput, SaleInput, Result) {
	t.Helper()
	p := PurchaseInput{BasePrice: d("100")}
	s := SaleInput{MarkupRatePct: d("10"), ApplyMarkup: true}
	r, err := CalculateFromMargin(p, s, d("20"))
	require.NoError(t, err)
	return p, s, r
}

func TestApplyPolicy_X90(t *testing.T) {
	p, s, r := markupFixture(t)

	adjusted := ApplyPolicy(p, s, r, "x90", decimal.Zero)

	assertDecimal(t, "132.90", adjusted.SalePrice)
	assertDecimal(t, "120.82", adjusted.SalePriceBase)
	assertDecimal(t, "12.08", adjusted.MarkupValue)
	assertDecimal(t, "32.90", adjusted.MarginPct)
}

func TestApplyPolicy_EndingNeverRoundsDown(t *testing.T) {
	p := PurchaseInput{BasePrice: d("10")}
	r := CalculateFromPrice(p, SaleInput{}, d("132.95"))

	assertDecimal(t, "133.90", ApplyPolicy(p, SaleInput{}, r, StrategyX90, decimal.Zero).SalePrice)
	assertDecimal(t, "132.99", ApplyPolicy(p, SaleInput{}, r, StrategyX99, decimal.Zero).SalePrice)
}

func TestApplyPolicy_AlreadyOnEnding_Unchanged(t *testing.T) {
	p := PurchaseInput{BasePrice: d("10")}
	r := CalculateFromPrice(p, SaleInput{}, d("19.99"))

	assert.Equal(t, r, ApplyPolicy(p, SaleInput{}, r, StrategyX99, decimal.Zero))
}

func TestApplyPolicy_NormalAndUnknownStrategies(t *testing.T) {
	p, s, r := markupFixture(t)

	for _, strategy := range []string{"", "NORMAL", " normal ", "X50"} {
		assert.Equal(t, r, ApplyPolicy(p, s, r, strategy, decimal.Zero), strategy)
	}
}

func TestApplyPolicy_MinimumPriceFloor(t *testing.T) {
	p, s, r := markupFixture(t)

	adjusted := ApplyPolicy(p, s, r, StrategyNormal, d("150"))
	assertDecimal(t, "150.00", adjusted.SalePrice)
	assertDecimal(t, "50.00", adjusted.MarginPct)

	// A floor under the current price has no effect.
	assert.Equal(t, r, ApplyPolicy(p, s, r, StrategyNormal, d("100")))
}

func TestApplyPolicy_FloorAfterEnding(t *testing.T) {
	p, s, r := markupFixture(t)

	adjusted := ApplyPolicy(p, s, r, StrategyX90, d("133"))
	assertDecimal(t, "133.00", adjusted.SalePrice)
}

func TestNormalizeStrategy(t *testing.T) {
	assert.Equal(t, "NORMAL", NormalizeStrategy("  "))
	assert.Equal(t, "X90", NormalizeStrategy(" x90"))
}
