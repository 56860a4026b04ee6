package upstream

import (
	"context"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
)

// RateProvider fetches USD-based rate snapshots from the upstream provider.
// Implementations never retry; that is left to callers.
type RateProvider interface {
	// FetchLatest requests the most recent snapshot.
	FetchLatest(ctx context.Context) (*domain.RateSnapshot, error)

	// FetchHistorical requests the snapshot for a past UTC calendar day (YYYY-MM-DD).
	FetchHistorical(ctx context.Context, date string) (*domain.RateSnapshot, error)
}
