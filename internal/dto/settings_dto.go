package dto

import "github.com/shopspring/decimal"

type RoundingStrategyRequest struct {
	Strategy string `json:"strategy" validate:"required,max=10"`
}

type RoundingStrategyResponse struct {
	Strategy string `json:"strategy"`
}

type MinPriceRuleRequest struct {
	ScopeType string      `json:"scope_type" validate:"required,oneof=product category"`
	ScopeKey  string      `json:"scope_key"  validate:"required,max=200"`
	MinPrice  FlexDecimal `json:"min_price"`
	IsActive  *bool       `json:"is_active"`
}

type MinPriceRuleResponse struct {
	ID        string          `json:"id"`
	ScopeType string          `json:"scope_type"`
	ScopeKey  string          `json:"scope_key"`
	MinPrice  decimal.Decimal `json:"min_price"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt string          `json:"updated_at"`
}

type AuditLogResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}
