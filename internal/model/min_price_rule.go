package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope types for MinPriceRule.
const (
	ScopeProduct  = "product"
	ScopeCategory = "category"
)

// MinPriceRule is a price floor keyed by a lower-cased product or category
// name. A product rule wins over a category rule.
type MinPriceRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ScopeType string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_min_price_scope"`
	ScopeKey  string          `gorm:"not null;uniqueIndex:idx_min_price_scope"`
	MinPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive  bool            `gorm:"not null;default:true"`
	UpdatedAt time.Time
}
