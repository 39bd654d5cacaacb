package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/pricing"
)

// PricingService runs the engine for a request and, when asked, applies the
// configured commercial policy on top.
type PricingService interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResponse, error)
}

type pricingService struct {
	settings SettingsService
}

func NewPricingService(settings SettingsService) PricingService {
	return &pricingService{settings: settings}
}

func (s *pricingService) Calculate(ctx context.Context, req dto.CalculateRequest) (*dto.CalculateResponse, error) {
	purchase := req.Purchase.ToInput()
	sale := req.Sale.ToInput()

	var result pricing.Result
	switch req.Mode {
	case dto.ModePrice:
		if !req.SalePrice.Valid {
			return nil, ErrSalePriceRequired
		}
		result = pricing.CalculateFromPrice(purchase, sale, req.SalePrice.Decimal)
	default:
		var err error
		result, err = pricing.CalculateFromMargin(purchase, sale, req.MarginPct.Decimal)
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.CalculateResponse{Result: result, MinPrice: decimal.Zero}
	if !req.ApplyPolicy {
		return resp, nil
	}

	strategy, err := s.settings.RoundingStrategy(ctx)
	if err != nil {
		return nil, err
	}
	minPrice, err := s.settings.MinPrice(ctx, req.ProductName, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("min price: %w", err)
	}

	resp.Result = pricing.ApplyPolicy(purchase, sale, result, strategy, minPrice)
	resp.PolicyApplied = true
	resp.RoundingStrategy = strategy
	resp.MinPrice = minPrice
	return resp, nil
}
