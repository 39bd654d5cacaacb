package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/pricing"
)

func newPricingFixture(strategy string) (PricingService, *stubRuleRepo) {
	settingsRepo := &stubSettingsRepo{values: map[string]string{model.SettingRoundingStrategy: strategy}}
	rules := &stubRuleRepo{}
	settings := NewSettingsService(settingsRepo, rules, nil, 0, nil)
	return NewPricingService(settings), rules
}

func decodeCalc(t *testing.T, body string) dto.CalculateRequest {
	t.Helper()
	var req dto.CalculateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestCalculate_MarginMode_CommercialText(t *testing.T) {
	svc, _ := newPricingFixture("NORMAL")
	req := decodeCalc(t, `{
		"purchase": {"base_price": "R$ 100,00", "ipi_rate_pct": "5%", "st_rate_pct": 8, "icms_rate_pct": "18",
		             "pis_rate_pct": "1,65", "cofins_rate_pct": "7,6", "credit_icms": true, "credit_pis": true, "credit_cofins": true},
		"sale": {"pis_rate_pct": "1,65", "cofins_rate_pct": "7,6", "icms_rate_pct": "18"},
		"margin_pct": "25"
	}`)

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.PolicyApplied)
	assert.True(t, decimal.RequireFromString("113").Equal(resp.Result.EffectiveCost))
	assert.True(t, decimal.RequireFromString("25").Equal(resp.Result.MarginPct))
}

func TestCalculate_PriceMode(t *testing.T) {
	svc, _ := newPricingFixture("NORMAL")
	req := decodeCalc(t, `{"purchase": {"base_price": 100}, "mode": "price", "sale_price": "150"}`)

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(resp.Result.SalePrice))
	assert.True(t, decimal.NewFromInt(50).Equal(resp.Result.MarginPct))
}

func TestCalculate_PriceModeWithoutPrice(t *testing.T) {
	svc, _ := newPricingFixture("NORMAL")
	_, err := svc.Calculate(context.Background(), decodeCalc(t, `{"mode": "price", "sale_price": null}`))
	assert.ErrorIs(t, err, ErrSalePriceRequired)
}

func TestCalculate_SaleTaxLoadTooHigh(t *testing.T) {
	svc, _ := newPricingFixture("NORMAL")
	_, err := svc.Calculate(context.Background(), decodeCalc(t, `{"purchase": {"base_price": 10}, "sale": {"icms_rate_pct": 100}}`))
	assert.ErrorIs(t, err, pricing.ErrSaleTaxLoadTooHigh)
}

func TestCalculate_PolicyUsesSettingsAndFloors(t *testing.T) {
	svc, rules := newPricingFixture("x90")
	require.NoError(t, rules.Upsert(context.Background(), &model.MinPriceRule{
		ScopeType: model.ScopeCategory, ScopeKey: "cabos", MinPrice: decimal.NewFromInt(200), IsActive: true,
	}))

	req := decodeCalc(t, `{"purchase": {"base_price": 100}, "margin_pct": 20, "apply_policy": true, "product_name": "Cabo", "category_name": "Cabos"}`)
	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.PolicyApplied)
	assert.Equal(t, "X90", resp.RoundingStrategy)
	assert.True(t, decimal.NewFromInt(200).Equal(resp.MinPrice))
	assert.True(t, decimal.NewFromInt(200).Equal(resp.Result.SalePrice))

	req.CategoryName = "outra"
	resp, err = svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("120.90").Equal(resp.Result.SalePrice))
}
