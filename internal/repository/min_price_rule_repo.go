package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thiagofdruzian/ERP/internal/model"
)

type MinPriceRuleRepository interface {
	// Upsert creates or replaces the rule for (ScopeType, ScopeKey).
	Upsert(ctx context.Context, rule *model.MinPriceRule) error
	// FindActive returns the active rule for the scope or ErrNotFound.
	FindActive(ctx context.Context, scopeType, scopeKey string) (*model.MinPriceRule, error)
	List(ctx context.Context) ([]model.MinPriceRule, error)
}

type minPriceRuleRepo struct{ db *gorm.DB }

func NewMinPriceRuleRepository(db *gorm.DB) MinPriceRuleRepository {
	return &minPriceRuleRepo{db: db}
}

func (r *minPriceRuleRepo) Upsert(ctx context.Context, rule *model.MinPriceRule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope_type"}, {Name: "scope_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"min_price", "is_active", "updated_at"}),
		}).
		Create(rule).Error
}

func (r *minPriceRuleRepo) FindActive(ctx context.Context, scopeType, scopeKey string) (*model.MinPriceRule, error) {
	var rule model.MinPriceRule
	err := r.db.WithContext(ctx).
		Where("scope_type = ? AND scope_key = ? AND is_active = true", scopeType, scopeKey).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *minPriceRuleRepo) List(ctx context.Context) ([]model.MinPriceRule, error) {
	var rules []model.MinPriceRule
	err := r.db.WithContext(ctx).Order("scope_type, scope_key").Find(&rules).Error
	return rules, err
}
