package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	portsupstream "github.com/SscSPs/aud_rates_app/internal/core/ports/upstream"
	"github.com/SscSPs/aud_rates_app/internal/platform/logging"
)

// LatestRatesService provides the latest AUD-based rates.
type LatestRatesService struct {
	provider portsupstream.RateProvider
}

var _ portssvc.LatestRatesSvc = (*LatestRatesService)(nil)

// NewLatestRatesService creates a new LatestRatesService.
func NewLatestRatesService(provider portsupstream.RateProvider) *LatestRatesService {
	return &LatestRatesService{provider: provider}
}

// LatestAudRates implements services.LatestRatesSvc.
// Upstream and configuration errors are returned unchanged apart from wrapping.
func (s *LatestRatesService) LatestAudRates(ctx context.Context, targets []string) (*domain.LatestRates, error) {
	snapshot, err := s.provider.FetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rates in service: %w", err)
	}

	audRates := RebaseToAUD(snapshot.Rates)
	codes := domain.ResolveTargets(targets)

	filtered := make(domain.RateMap, len(codes))
	for _, code := range codes {
		if v, ok := audRates[code]; ok {
			filtered[code] = v
		}
	}

	logging.FromContext(ctx).Debug("Rebased latest rates",
		slog.Int64("timestamp", snapshot.Timestamp),
		slog.Any("targets", codes),
		slog.Int("matched", len(filtered)),
	)

	return &domain.LatestRates{
		Base:      domain.BaseCurrency,
		Timestamp: snapshot.Timestamp,
		Rates:     filtered,
	}, nil
}
