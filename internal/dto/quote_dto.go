package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/pricing"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaveQuoteRequest creates a quote (POST) or saves a new version (PUT, where
// Version must be the version the editor loaded). The result is always
// recomputed server-side from the embedded calculation.
type SaveQuoteRequest struct {
	CalculateRequest
	Version      int    `json:"version" validate:"omitempty,min=1"`
	Status       string `json:"status" validate:"max=30"`
	SupplierName string `json:"supplier_name" validate:"max=200"`
	Notes        string `json:"notes" validate:"max=4000"`
}

// QuoteListQuery is bound from the query string of GET /v1/cotacoes.
type QuoteListQuery struct {
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	Supplier string `form:"fornecedor"`
	Product  string `form:"produto"`
	Owner    string `form:"usuario"`
	DateFrom string `form:"data_de"`  // YYYY-MM-DD
	DateTo   string `form:"data_ate"` // YYYY-MM-DD
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QuoteResponse struct {
	ID           string                `json:"id"`
	Version      int                   `json:"version"`
	Status       string                `json:"status"`
	ProductName  string                `json:"product_name"`
	CategoryName string                `json:"category_name"`
	SupplierName string                `json:"supplier_name"`
	OwnerUser    string                `json:"owner_user"`
	Notes        string                `json:"notes"`
	Purchase     pricing.PurchaseInput `json:"purchase"`
	Sale         pricing.SaleInput     `json:"sale"`
	Result       pricing.Result        `json:"result"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}

// QuoteSummary is one row of the recent-quotes list and the XLSX export.
type QuoteSummary struct {
	ID            string          `json:"id"`
	Version       int             `json:"version"`
	Status        string          `json:"status"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	SupplierName  string          `json:"supplier_name"`
	OwnerUser     string          `json:"owner_user"`
	EffectiveCost decimal.Decimal `json:"effective_cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
	UpdatedAt     string          `json:"updated_at"`
}

type QuoteListResponse struct {
	Data  []QuoteSummary `json:"data"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
}

type QuoteVersionItem struct {
	Version   int    `json:"version"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type QuoteVersionListResponse struct {
	QuoteID string             `json:"quote_id"`
	Data    []QuoteVersionItem `json:"data"`
}

// SendQuoteEmailRequest mails a quote PDF. Version 0 sends the head.
type SendQuoteEmailRequest struct {
	To      string `json:"to" validate:"required,email,max=254"`
	Version int    `json:"version" validate:"omitempty,min=1"`
	Message string `json:"message" validate:"max=2000"`
}

type SendQuoteEmailResponse struct {
	QuoteID string `json:"quote_id"`
	Version int    `json:"version"`
	To      string `json:"to"`
	Status  string `json:"status"`
}
