package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one user action. Rows are never updated.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username   string    `gorm:"type:varchar(100);not null"`
	Action     string    `gorm:"type:varchar(50);not null"`
	EntityType string    `gorm:"type:varchar(50);not null"`
	EntityID   string    `gorm:"not null;default:''"`
	Details    string    `gorm:"not null;default:''"`
	CreatedAt  time.Time `gorm:"index"`
}
