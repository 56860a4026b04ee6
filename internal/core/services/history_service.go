package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	portsupstream "github.com/SscSPs/aud_rates_app/internal/core/ports/upstream"
	"github.com/SscSPs/aud_rates_app/internal/platform/logging"
	"github.com/SscSPs/aud_rates_app/internal/utils/dateutil"
	"github.com/SscSPs/aud_rates_app/internal/utils/retry"
)

const (
	// maxHistoryWorkers bounds in-flight historical requests to respect upstream rate limits.
	maxHistoryWorkers = 4
	// historyFetchAttempts is the number of tries per date before it is marked failed.
	historyFetchAttempts = 3
	// historyRetryDelay is the wait between tries of one date.
	historyRetryDelay = 100 * time.Millisecond
)

// HistoryService builds AUD-based history tables from per-day upstream snapshots.
type HistoryService struct {
	provider    portsupstream.RateProvider
	dates       func(days int) []string
	retryPolicy *retry.Policy
	concurrency int
}

var _ portssvc.HistorySvc = (*HistoryService)(nil)

// HistoryServiceOption configures a HistoryService.
type HistoryServiceOption func(*HistoryService)

// WithDateSource replaces the window builder, which defaults to dateutil.BuildPastDatesUTC.
func WithDateSource(dates func(days int) []string) HistoryServiceOption {
	return func(s *HistoryService) {
		s.dates = dates
	}
}

// WithRetryPolicy replaces the per-date retry policy.
func WithRetryPolicy(p *retry.Policy) HistoryServiceOption {
	return func(s *HistoryService) {
		s.retryPolicy = p
	}
}

// WithConcurrency sets the maximum number of concurrent upstream requests.
func WithConcurrency(n int) HistoryServiceOption {
	return func(s *HistoryService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(provider portsupstream.RateProvider, opts ...HistoryServiceOption) *HistoryService {
	s := &HistoryService{
		provider: provider,
		dates:    dateutil.BuildPastDatesUTC,
		retryPolicy: retry.NewPolicy(
			retry.Limit(historyFetchAttempts),
			retry.ConstantBackoff(historyRetryDelay),
		),
		concurrency: maxHistoryWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetHistoryByDateAUD implements services.HistorySvc.
//
// Dates are claimed from a shared cursor by at most s.concurrency workers and each
// row is written to its own slot, so the result order only depends on the window.
// Once started the build runs to completion: cancelling ctx does not abort fetches.
func (s *HistoryService) GetHistoryByDateAUD(ctx context.Context, days int, targets []string) (*domain.HistoryTable, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1, got %d", apperrors.ErrValidation, days)
	}

	dates := s.dates(days)
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: empty date window for %d days", apperrors.ErrValidation, days)
	}
	codes := domain.NormalizeTargets(targets)
	points := make([]domain.HistoryRow, len(dates))

	fetchCtx := context.WithoutCancel(ctx)
	var next atomic.Int64
	var g errgroup.Group
	for range min(s.concurrency, len(dates)) {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= len(dates) {
					return nil
				}
				points[i] = s.buildRow(fetchCtx, dates[i], codes)
			}
		})
	}
	// Workers never fail; a date that cannot be fetched becomes an error row.
	_ = g.Wait()

	return &domain.HistoryTable{
		Base:      domain.BaseCurrency,
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		Points:    points,
	}, nil
}

func (s *HistoryService) buildRow(ctx context.Context, date string, codes []string) domain.HistoryRow {
	snapshot, res := s.fetchWithRetry(ctx, date)
	if !res.OK() {
		logging.FromContext(ctx).Warn("Giving up on historical date",
			slog.String("date", date),
			slog.Uint64("attempts", uint64(res.Attempts)),
			slog.String("error", res.Err.Error()),
		)
		return domain.HistoryRow{Date: date, Error: apperrors.ErrFetchFailed.Error()}
	}
	return ToAudRow(snapshot.Rates, codes, date)
}

func (s *HistoryService) fetchWithRetry(ctx context.Context, date string) (*domain.RateSnapshot, retry.Result) {
	var snapshot *domain.RateSnapshot
	res := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		var err error
		snapshot, err = s.provider.FetchHistorical(ctx, date)
		return err
	})
	return snapshot, res
}

// ToByCurrency implements services.HistorySvc.
func (s *HistoryService) ToByCurrency(points []domain.HistoryRow, targets []string) domain.SeriesMap {
	return ToByCurrency(points, targets)
}

// ToAudRow rebases one snapshot and keeps only the requested codes present in it.
func ToAudRow(usdRates map[string]float64, codes []string, date string) domain.HistoryRow {
	audRates := RebaseToAUD(usdRates)
	row := domain.HistoryRow{Date: date, Rates: make(map[string]float64, len(codes))}
	for _, code := range codes {
		if v, ok := audRates[code]; ok {
			row.Rates[code] = v
		}
	}
	return row
}

// ToByCurrency transposes rows into one ascending series per target.
// Every target gets a key, possibly with an empty series; failed rows and missing
// values contribute no point. Empty targets select domain.DefaultCurrencies.
func ToByCurrency(points []domain.HistoryRow, targets []string) domain.SeriesMap {
	codes := domain.ResolveTargets(targets)
	series := make(domain.SeriesMap, len(codes))
	for _, code := range codes {
		series[code] = []domain.SeriesPoint{}
	}
	for _, row := range points {
		for _, code := range codes {
			if v, ok := row.Value(code); ok {
				series[code] = append(series[code], domain.SeriesPoint{Date: row.Date, Value: v})
			}
		}
	}
	return series
}
