package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/model"
)

func newCachedSettings(t *testing.T) (SettingsService, *stubSettingsRepo, *miniredis.Miniredis, *recordingDispatcher) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &stubSettingsRepo{values: map[string]string{}}
	audit := &recordingDispatcher{}
	return NewSettingsService(repo, &stubRuleRepo{}, rdb, 10*time.Minute, audit), repo, mr, audit
}

func TestRoundingStrategy_DefaultsToNormalAndCaches(t *testing.T) {
	svc, repo, mr, _ := newCachedSettings(t)
	ctx := context.Background()

	s, err := svc.RoundingStrategy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL", s)

	s, err = svc.RoundingStrategy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL", s)
	assert.Equal(t, 1, repo.gets, "second read served from cache")

	cached, err := mr.Get(roundingStrategyCacheKey)
	require.NoError(t, err)
	assert.Equal(t, "NORMAL", cached)
	assert.Equal(t, 10*time.Minute, mr.TTL(roundingStrategyCacheKey))
}

func TestSetRoundingStrategy_NormalizesAndEvicts(t *testing.T) {
	svc, repo, mr, audit := newCachedSettings(t)
	ctx := context.Background()

	_, err := svc.RoundingStrategy(ctx)
	require.NoError(t, err)

	s, err := svc.SetRoundingStrategy(ctx, " x99 ", "ana")
	require.NoError(t, err)
	assert.Equal(t, "X99", s)
	assert.Equal(t, "X99", repo.values[model.SettingRoundingStrategy])
	assert.False(t, mr.Exists(roundingStrategyCacheKey))

	s, err = svc.RoundingStrategy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X99", s)
	assert.Equal(t, []string{"ARREDONDAMENTO_ALTERADO"}, audit.actions())

	_, err = svc.SetRoundingStrategy(ctx, "X50", "ana")
	assert.ErrorIs(t, err, ErrInvalidRoundingStrategy)
}

func TestRoundingStrategy_CacheDownFallsBackToDB(t *testing.T) {
	svc, repo, mr, _ := newCachedSettings(t)
	repo.values[model.SettingRoundingStrategy] = "x90"
	mr.Close()

	s, err := svc.RoundingStrategy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X90", s)
}

func TestMinPrice_ProductBeatsCategory(t *testing.T) {
	svc, _, _, _ := newCachedSettings(t)
	ctx := context.Background()

	for _, req := range []dto.MinPriceRuleRequest{
		{ScopeType: "category", ScopeKey: " Cabos ", MinPrice: dto.NewFlexDecimal(decimal.NewFromInt(50))},
		{ScopeType: "product", ScopeKey: "CABO 10MM", MinPrice: dto.NewFlexDecimal(decimal.NewFromInt(80))},
	} {
		_, err := svc.SetMinPriceRule(ctx, req, "ana")
		require.NoError(t, err)
	}

	got, err := svc.MinPrice(ctx, "cabo 10mm", "cabos")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(got))

	got, err = svc.MinPrice(ctx, "cabo 6mm", "CABOS")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(got))

	got, err = svc.MinPrice(ctx, "tomada", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestMinPrice_InactiveRuleIgnored(t *testing.T) {
	svc, _, _, _ := newCachedSettings(t)
	ctx := context.Background()
	inactive := false

	_, err := svc.SetMinPriceRule(ctx, dto.MinPriceRuleRequest{
		ScopeType: "product", ScopeKey: "cabo", MinPrice: dto.NewFlexDecimal(decimal.NewFromInt(80)), IsActive: &inactive,
	}, "ana")
	require.NoError(t, err)

	got, err := svc.MinPrice(ctx, "cabo", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	rules, err := svc.ListMinPriceRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].IsActive)
}

func TestSetMinPriceRule_Validation(t *testing.T) {
	svc, _, _, _ := newCachedSettings(t)
	ctx := context.Background()

	_, err := svc.SetMinPriceRule(ctx, dto.MinPriceRuleRequest{ScopeType: "supplier", ScopeKey: "x"}, "ana")
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = svc.SetMinPriceRule(ctx, dto.MinPriceRuleRequest{ScopeType: "product", ScopeKey: "   "}, "ana")
	assert.ErrorIs(t, err, ErrEmptyScopeKey)
}
