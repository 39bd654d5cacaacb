package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/thiagofdruzian/ERP/internal/pricing"
)

// Quote status values used by the editor. Status is free text for the store;
// these are the ones the service knows about.
const (
	StatusDraft    = "RASCUNHO"
	StatusApproved = "APROVADA"
	StatusArchived = "ARQUIVADA"
)

// Quote is the head row of a quote lineage: always the latest saved version.
// ID is uuid.Nil until the first save.
type Quote struct {
	ID           uuid.UUID                                 `gorm:"type:uuid;primaryKey"`
	Version      int                                       `gorm:"not null;default:1"`
	Status       string                                    `gorm:"type:varchar(30);not null;index"`
	ProductName  string                                    `gorm:"not null"`
	CategoryName string                                    `gorm:"not null;default:''"`
	SupplierName string                                    `gorm:"not null;default:''"`
	OwnerUser    string                                    `gorm:"type:varchar(100);not null;index"`
	Notes        string                                    `gorm:"not null;default:''"`
	Purchase     datatypes.JSONType[pricing.PurchaseInput] `gorm:"type:jsonb;not null"`
	Sale         datatypes.JSONType[pricing.SaleInput]     `gorm:"type:jsonb;not null"`
	Result       datatypes.JSONType[pricing.Result]        `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index"`
}

// QuoteVersion is the immutable snapshot of a Quote at one version.
// Rows are only ever inserted; (quote_id, version) is unique.
type QuoteVersion struct {
	ID           uuid.UUID                                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuoteID      uuid.UUID                                 `gorm:"type:uuid;not null;uniqueIndex:idx_quote_versions_quote_version"`
	Version      int                                       `gorm:"not null;uniqueIndex:idx_quote_versions_quote_version"`
	Status       string                                    `gorm:"type:varchar(30);not null"`
	ProductName  string                                    `gorm:"not null"`
	CategoryName string                                    `gorm:"not null;default:''"`
	SupplierName string                                    `gorm:"not null;default:''"`
	OwnerUser    string                                    `gorm:"type:varchar(100);not null"`
	Notes        string                                    `gorm:"not null;default:''"`
	Purchase     datatypes.JSONType[pricing.PurchaseInput] `gorm:"type:jsonb;not null"`
	Sale         datatypes.JSONType[pricing.SaleInput]     `gorm:"type:jsonb;not null"`
	Result       datatypes.JSONType[pricing.Result]        `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
}

// Snapshot copies the head into a version row stamped with the head's
// UpdatedAt.
func (q *Quote) Snapshot() *QuoteVersion {
	return &QuoteVersion{
		QuoteID:      q.ID,
		Version:      q.Version,
		Status:       q.Status,
		ProductName:  q.ProductName,
		CategoryName: q.CategoryName,
		SupplierName: q.SupplierName,
		OwnerUser:    q.OwnerUser,
		Notes:        q.Notes,
		Purchase:     q.Purchase,
		Sale:         q.Sale,
		Result:       q.Result,
		CreatedAt:    q.UpdatedAt,
	}
}

// AsQuote presents a snapshot in head shape. UpdatedAt is the snapshot's own
// creation time; CreatedAt is left for the caller to fill from the head.
func (v *QuoteVersion) AsQuote() *Quote {
	return &Quote{
		ID:           v.QuoteID,
		Version:      v.Version,
		Status:       v.Status,
		ProductName:  v.ProductName,
		CategoryName: v.CategoryName,
		SupplierName: v.SupplierName,
		OwnerUser:    v.OwnerUser,
		Notes:        v.Notes,
		Purchase:     v.Purchase,
		Sale:         v.Sale,
		Result:       v.Result,
		UpdatedAt:    v.CreatedAt,
	}
}
