package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrSaleTaxLoadTooHigh is returned when the combined sale-side tax rates
// reach 100% and no sale price can satisfy the requested margin.
var ErrSaleTaxLoadTooHigh = errors.New("a soma dos impostos de venda deve ser menor que 100%")

// CalculateFromMargin derives the sale price that yields marginPct over the
// effective cost after sale taxes, then layers the markup on top.
func CalculateFromMargin(p PurchaseInput, s SaleInput, marginPct decimal.Decimal) (Result, error) {
	taxFraction := saleTaxFraction(s)
	if taxFraction.GreaterThanOrEqual(maxSaleTaxFraction) {
		return Result{}, ErrSaleTaxLoadTooHigh
	}

	m := buildPurchaseMetrics(p)
	targetNetRevenue := m.effectiveCost.Mul(one.Add(rateFraction(marginPct)))
	base := targetNetRevenue.Div(one.Sub(taxFraction))

	price := base
	if mk := markupFraction(s); mk.IsPositive() {
		price = base.Mul(one.Add(mk))
	}
	return buildResult(s, m, taxFraction, base, price), nil
}

// CalculateFromPrice evaluates a caller-chosen sale price. With an active
// markup the price is split back into its pre-markup base.
func CalculateFromPrice(p PurchaseInput, s SaleInput, salePrice decimal.Decimal) Result {
	m := buildPurchaseMetrics(p)
	base := salePrice
	if mk := markupFraction(s); mk.IsPositive() {
		base = salePrice.Div(one.Add(mk))
	}
	return buildResult(s, m, saleTaxFraction(s), base, salePrice)
}

func saleTaxFraction(s SaleInput) decimal.Decimal {
	return rateFraction(s.PISRatePct).
		Add(rateFraction(s.COFINSRatePct)).
		Add(rateFraction(s.ICMSRatePct))
}

func markupFraction(s SaleInput) decimal.Decimal {
	if !s.ApplyMarkup {
		return decimal.Zero
	}
	return rateFraction(s.MarkupRatePct)
}

func buildPurchaseMetrics(p PurchaseInput) purchaseMetrics {
	base := p.BasePrice
	m := purchaseMetrics{
		ipi:    base.Mul(rateFraction(p.IPIRatePct)),
		st:     base.Mul(rateFraction(p.STRatePct)),
		icms:   base.Mul(rateFraction(p.ICMSRatePct)),
		pis:    base.Mul(rateFraction(p.PISRatePct)),
		cofins: base.Mul(rateFraction(p.COFINSRatePct)),
	}
	m.taxesTotal = m.ipi.Add(m.st).Add(m.icms).Add(m.pis).Add(m.cofins)

	// Commercial resale: IPI and ST are never recoverable.
	m.creditsTotal = decimal.Zero
	if p.CreditICMS {
		m.creditsTotal = m.creditsTotal.Add(m.icms)
	}
	if p.CreditPIS {
		m.creditsTotal = m.creditsTotal.Add(m.pis)
	}
	if p.CreditCOFINS {
		m.creditsTotal = m.creditsTotal.Add(m.cofins)
	}

	m.effectiveCost = base.Add(m.taxesTotal).Sub(m.creditsTotal)
	return m
}

func buildResult(s SaleInput, m purchaseMetrics, taxFraction, base, price decimal.Decimal) Result {
	saleTaxes := price.Mul(taxFraction)
	netRevenue := price.Sub(saleTaxes)
	netProfit := netRevenue.Sub(m.effectiveCost)

	margin := decimal.Zero
	if m.effectiveCost.IsPositive() {
		margin = netProfit.Div(m.effectiveCost).Mul(hundred)
	}

	markupRate := decimal.Zero
	if s.ApplyMarkup {
		markupRate = s.MarkupRatePct
	}

	return Result{
		IPIValue:             RoundMoney(m.ipi),
		STValue:              RoundMoney(m.st),
		ICMSPurchaseValue:    RoundMoney(m.icms),
		PISPurchaseValue:     RoundMoney(m.pis),
		COFINSPurchaseValue:  RoundMoney(m.cofins),
		PurchaseTaxesTotal:   RoundMoney(m.taxesTotal),
		PurchaseCreditsTotal: RoundMoney(m.creditsTotal),
		EffectiveCost:        RoundMoney(m.effectiveCost),
		SalesTaxRatePct:      RoundPct(taxFraction.Mul(hundred)),
		SalePriceBase:        RoundMoney(base),
		SalePrice:            RoundMoney(price),
		MarkupRatePct:        RoundPct(markupRate),
		MarkupValue:          RoundMoney(price.Sub(base)),
		// Margin and real margin are both measured on net profit, markup included.
		MarginPct:      RoundPct(margin),
		SaleTaxesValue: RoundMoney(saleTaxes),
		NetRevenue:     RoundMoney(netRevenue),
		NetProfit:      RoundMoney(netProfit),
		RealMarginPct:  RoundPct(margin),
	}
}
