package services_test

import (
	"context"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	portsupstream "github.com/SscSPs/aud_rates_app/internal/core/ports/upstream"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchLatest(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateProvider) FetchHistorical(ctx context.Context, date string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

// Ensure mock implements the interface
var _ portsupstream.RateProvider = (*MockRateProvider)(nil)

// --- Mock LatestRatesSvc ---
type MockLatestRatesService struct {
	mock.Mock
}

func (m *MockLatestRatesService) LatestAudRates(ctx context.Context, targets []string) (*domain.LatestRates, error) {
	args := m.Called(ctx, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LatestRates), args.Error(1)
}

var _ portssvc.LatestRatesSvc = (*MockLatestRatesService)(nil)
