package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thiagofdruzian/ERP/internal/model"
)

// MaxAuditListLimit bounds AuditRepository.ListRecent.
const MaxAuditListLimit = 2000

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns newest-first entries; append-only table, so insertion
// order and created_at agree.
func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var rows []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(clamp(limit, 1, MaxAuditListLimit)).
		Find(&rows).Error
	return rows, err
}
