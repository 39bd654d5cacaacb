package pricing

import "github.com/shopspring/decimal"

// PurchaseInput describes the acquisition side of a quote. IPI and ST never
// generate credit, so they carry no credit flag.
type PurchaseInput struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	IPIRatePct    decimal.Decimal `json:"ipi_rate_pct"`
	STRatePct     decimal.Decimal `json:"st_rate_pct"`
	ICMSRatePct   decimal.Decimal `json:"icms_rate_pct"`
	PISRatePct    decimal.Decimal `json:"pis_rate_pct"`
	COFINSRatePct decimal.Decimal `json:"cofins_rate_pct"`
	CreditICMS    bool            `json:"credit_icms"`
	CreditPIS     bool            `json:"credit_pis"`
	CreditCOFINS  bool            `json:"credit_cofins"`
}

// SaleInput describes the sale-side tax load and the optional markup layer.
type SaleInput struct {
	PISRatePct    decimal.Decimal `json:"pis_rate_pct"`
	COFINSRatePct decimal.Decimal `json:"cofins_rate_pct"`
	ICMSRatePct   decimal.Decimal `json:"icms_rate_pct"`
	MarkupRatePct decimal.Decimal `json:"markup_rate_pct"`
	ApplyMarkup   bool            `json:"apply_markup"`
}

// Result is the full breakdown of one pricing calculation. Money fields are
// rounded to cents and percentages to two fraction digits; only the engine
// builds it.
type Result struct {
	IPIValue             decimal.Decimal `json:"ipi_value"`
	STValue              decimal.Decimal `json:"st_value"`
	ICMSPurchaseValue    decimal.Decimal `json:"icms_purchase_value"`
	PISPurchaseValue     decimal.Decimal `json:"pis_purchase_value"`
	COFINSPurchaseValue  decimal.Decimal `json:"cofins_purchase_value"`
	PurchaseTaxesTotal   decimal.Decimal `json:"purchase_taxes_total"`
	PurchaseCreditsTotal decimal.Decimal `json:"purchase_credits_total"`
	EffectiveCost        decimal.Decimal `json:"effective_cost"`
	SalesTaxRatePct      decimal.Decimal `json:"sales_tax_rate_pct"`
	SalePriceBase        decimal.Decimal `json:"sale_price_base"`
	SalePrice            decimal.Decimal `json:"sale_price"`
	MarkupRatePct        decimal.Decimal `json:"markup_rate_pct"`
	MarkupValue          decimal.Decimal `json:"markup_value"`
	MarginPct            decimal.Decimal `json:"margin_pct"`
	SaleTaxesValue       decimal.Decimal `json:"sale_taxes_value"`
	NetRevenue           decimal.Decimal `json:"net_revenue"`
	NetProfit            decimal.Decimal `json:"net_profit"`
	RealMarginPct        decimal.Decimal `json:"real_margin_pct"`
}

// purchaseMetrics holds the unrounded intermediate purchase figures.
type purchaseMetrics struct {
	ipi           decimal.Decimal
	st            decimal.Decimal
	icms          decimal.Decimal
	pis           decimal.Decimal
	cofins        decimal.Decimal
	taxesTotal    decimal.Decimal
	creditsTotal  decimal.Decimal
	effectiveCost decimal.Decimal
}
