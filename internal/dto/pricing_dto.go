package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/pricing"
)

// Calculation modes.
const (
	ModeMargin = "margin"
	ModePrice  = "price"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseRequest struct {
	BasePrice     FlexDecimal `json:"base_price"`
	IPIRatePct    FlexDecimal `json:"ipi_rate_pct"`
	STRatePct     FlexDecimal `json:"st_rate_pct"`
	ICMSRatePct   FlexDecimal `json:"icms_rate_pct"`
	PISRatePct    FlexDecimal `json:"pis_rate_pct"`
	COFINSRatePct FlexDecimal `json:"cofins_rate_pct"`
	CreditICMS    bool        `json:"credit_icms"`
	CreditPIS     bool        `json:"credit_pis"`
	CreditCOFINS  bool        `json:"credit_cofins"`
}

func (r PurchaseRequest) ToInput() pricing.PurchaseInput {
	return pricing.PurchaseInput{
		BasePrice:     r.BasePrice.Decimal,
		IPIRatePct:    r.IPIRatePct.Decimal,
		STRatePct:     r.STRatePct.Decimal,
		ICMSRatePct:   r.ICMSRatePct.Decimal,
		PISRatePct:    r.PISRatePct.Decimal,
		COFINSRatePct: r.COFINSRatePct.Decimal,
		CreditICMS:    r.CreditICMS,
		CreditPIS:     r.CreditPIS,
		CreditCOFINS:  r.CreditCOFINS,
	}
}

type SaleRequest struct {
	PISRatePct    FlexDecimal `json:"pis_rate_pct"`
	COFINSRatePct FlexDecimal `json:"cofins_rate_pct"`
	ICMSRatePct   FlexDecimal `json:"icms_rate_pct"`
	MarkupRatePct FlexDecimal `json:"markup_rate_pct"`
	ApplyMarkup   bool        `json:"apply_markup"`
}

func (r SaleRequest) ToInput() pricing.SaleInput {
	return pricing.SaleInput{
		PISRatePct:    r.PISRatePct.Decimal,
		COFINSRatePct: r.COFINSRatePct.Decimal,
		ICMSRatePct:   r.ICMSRatePct.Decimal,
		MarkupRatePct: r.MarkupRatePct.Decimal,
		ApplyMarkup:   r.ApplyMarkup,
	}
}

// CalculateRequest drives one calculation. Mode "margin" (default) solves the
// price for MarginPct; mode "price" evaluates SalePrice. With ApplyPolicy the
// configured price ending and the product/category floor are applied.
type CalculateRequest struct {
	Purchase     PurchaseRequest `json:"purchase"`
	Sale         SaleRequest     `json:"sale"`
	Mode         string          `json:"mode" validate:"omitempty,oneof=margin price"`
	MarginPct    FlexDecimal     `json:"margin_pct"`
	SalePrice    FlexDecimal     `json:"sale_price"`
	ApplyPolicy  bool            `json:"apply_policy"`
	ProductName  string          `json:"product_name" validate:"max=200"`
	CategoryName string          `json:"category_name" validate:"max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CalculateResponse struct {
	Result           pricing.Result  `json:"result"`
	PolicyApplied    bool            `json:"policy_applied"`
	RoundingStrategy string          `json:"rounding_strategy,omitempty"`
	MinPrice         decimal.Decimal `json:"min_price"`
}
