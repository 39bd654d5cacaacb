package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/pricing"
	"github.com/thiagofdruzian/ERP/internal/repository"
)

const roundingStrategyCacheKey = "settings:rounding_strategy"

// SettingsService owns the pricing policy inputs: the price-ending strategy
// and the per-product / per-category minimum prices.
type SettingsService interface {
	RoundingStrategy(ctx context.Context) (string, error)
	SetRoundingStrategy(ctx context.Context, strategy, actor string) (string, error)
	MinPrice(ctx context.Context, productName, categoryName string) (decimal.Decimal, error)
	SetMinPriceRule(ctx context.Context, req dto.MinPriceRuleRequest, actor string) (*dto.MinPriceRuleResponse, error)
	ListMinPriceRules(ctx context.Context) ([]dto.MinPriceRuleResponse, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	rules    repository.MinPriceRuleRepository
	rdb      *redis.Client // optional cache
	cacheTTL time.Duration
	audit    AuditDispatcher
}

func NewSettingsService(
	repo repository.SettingsRepository,
	rules repository.MinPriceRuleRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	audit AuditDispatcher,
) SettingsService {
	return &settingsService{repo: repo, rules: rules, rdb: rdb, cacheTTL: cacheTTL, audit: audit}
}

// RoundingStrategy reads through the Redis cache; a cache failure degrades
// to a database read.
func (s *settingsService) RoundingStrategy(ctx context.Context) (string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, roundingStrategyCacheKey).Result(); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("settings: cache read failed")
		}
	}

	strategy, err := s.repo.Get(ctx, model.SettingRoundingStrategy)
	if errors.Is(err, repository.ErrNotFound) {
		strategy = pricing.StrategyNormal
	} else if err != nil {
		return "", fmt.Errorf("load rounding strategy: %w", err)
	}
	strategy = pricing.NormalizeStrategy(strategy)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, roundingStrategyCacheKey, strategy, s.cacheTTL).Err(); err != nil {
			log.Warn().Err(err).Msg("settings: cache write failed")
		}
	}
	return strategy, nil
}

func (s *settingsService) SetRoundingStrategy(ctx context.Context, strategy, actor string) (string, error) {
	strategy = pricing.NormalizeStrategy(strategy)
	switch strategy {
	case pricing.StrategyNormal, pricing.StrategyX90, pricing.StrategyX99:
	default:
		return "", ErrInvalidRoundingStrategy
	}

	if err := s.repo.Set(ctx, model.SettingRoundingStrategy, strategy); err != nil {
		return "", fmt.Errorf("save rounding strategy: %w", err)
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, roundingStrategyCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("settings: cache eviction failed")
		}
	}

	notify(ctx, s.audit, actor, "ARREDONDAMENTO_ALTERADO", "setting", model.SettingRoundingStrategy, strategy)
	return strategy, nil
}

// MinPrice returns the active product floor, else the active category floor,
// else zero.
func (s *settingsService) MinPrice(ctx context.Context, productName, categoryName string) (decimal.Decimal, error) {
	lookups := []struct{ scope, key string }{
		{model.ScopeProduct, scopeKey(productName)},
		{model.ScopeCategory, scopeKey(categoryName)},
	}
	for _, l := range lookups {
		if l.key == "" {
			continue
		}
		rule, err := s.rules.FindActive(ctx, l.scope, l.key)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("load min price rule: %w", err)
		}
		return rule.MinPrice, nil
	}
	return decimal.Zero, nil
}

func (s *settingsService) SetMinPriceRule(ctx context.Context, req dto.MinPriceRuleRequest, actor string) (*dto.MinPriceRuleResponse, error) {
	scope := strings.ToLower(strings.TrimSpace(req.ScopeType))
	if scope != model.ScopeProduct && scope != model.ScopeCategory {
		return nil, ErrInvalidScope
	}
	key := scopeKey(req.ScopeKey)
	if key == "" {
		return nil, ErrEmptyScopeKey
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule := &model.MinPriceRule{
		ScopeType: scope,
		ScopeKey:  key,
		MinPrice:  pricing.RoundMoney(req.MinPrice.Decimal),
		IsActive:  active,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.rules.Upsert(ctx, rule); err != nil {
		return nil, fmt.Errorf("save min price rule: %w", err)
	}

	notify(ctx, s.audit, actor, "PRECO_MINIMO_ALTERADO", "min_price_rule", scope+":"+key, rule.MinPrice.StringFixed(2))
	resp := toMinPriceRuleResponse(*rule)
	return &resp, nil
}

func (s *settingsService) ListMinPriceRules(ctx context.Context) ([]dto.MinPriceRuleResponse, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MinPriceRuleResponse, len(rules))
	for i, r := range rules {
		resp[i] = toMinPriceRuleResponse(r)
	}
	return resp, nil
}

func scopeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func toMinPriceRuleResponse(r model.MinPriceRule) dto.MinPriceRuleResponse {
	return dto.MinPriceRuleResponse{
		ID:        r.ID.String(),
		ScopeType: r.ScopeType,
		ScopeKey:  r.ScopeKey,
		MinPrice:  r.MinPrice,
		IsActive:  r.IsActive,
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
