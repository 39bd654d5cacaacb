package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleGerencia  = "GERENCIA"
	RoleComercial = "COMERCIAL"
)

// Usuario stores system users with role-based access.
// Role: "GERENCIA" | "COMERCIAL"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Ativo        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
