package services

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
)

// convertedPlaces is the number of decimal places kept in converted amounts.
const convertedPlaces = 4

// ConversionService converts AUD amounts using the latest rates.
type ConversionService struct {
	latestRates portssvc.LatestRatesSvc
}

var _ portssvc.ConversionSvc = (*ConversionService)(nil)

// NewConversionService creates a new ConversionService.
func NewConversionService(latestRates portssvc.LatestRatesSvc) *ConversionService {
	return &ConversionService{latestRates: latestRates}
}

// ConvertAmount implements services.ConversionSvc.
// Targets keep their resolved order; a target without a finite rate gets nil rate and amount.
func (s *ConversionService) ConvertAmount(ctx context.Context, amount decimal.Decimal, targets []string) (*domain.ConversionResult, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	latest, err := s.latestRates.LatestAudRates(ctx, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to convert amount in service: %w", err)
	}

	codes := domain.ResolveTargets(targets)
	items := make([]domain.ConvertedItem, 0, len(codes))
	for _, code := range codes {
		item := domain.ConvertedItem{Code: code}
		if rate, ok := latest.Rates[code]; ok && !math.IsNaN(rate) && !math.IsInf(rate, 0) {
			converted := amount.Mul(decimal.NewFromFloat(rate)).Round(convertedPlaces)
			item.Rate = &rate
			item.Amount = &converted
		}
		items = append(items, item)
	}

	return &domain.ConversionResult{
		Base:      domain.BaseCurrency,
		Timestamp: latest.Timestamp,
		Amount:    amount,
		Targets:   items,
	}, nil
}
