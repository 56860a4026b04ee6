package services

import (
	"context"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LatestRatesSvc answers "what are today's AUD rates for these targets".
type LatestRatesSvc interface {
	// LatestAudRates fetches the newest snapshot and returns the AUD-based rates of targets.
	// Empty targets select domain.DefaultCurrencies; unknown codes are dropped silently.
	LatestAudRates(ctx context.Context, targets []string) (*domain.LatestRates, error)
}

// HistorySvc builds AUD-based history over a window of past days.
type HistorySvc interface {
	// GetHistoryByDateAUD returns one row per day of the window, oldest first.
	// Days that cannot be fetched become error rows instead of failing the call.
	// Targets are trimmed and upper-cased; blanks and duplicates are dropped.
	// Codes missing from a day's snapshot are left out of that row.
	GetHistoryByDateAUD(ctx context.Context, days int, targets []string) (*domain.HistoryTable, error)

	// ToByCurrency transposes date-major rows into one series per target.
	ToByCurrency(points []domain.HistoryRow, targets []string) domain.SeriesMap
}

// ConversionSvc converts AUD amounts at the latest rates.
type ConversionSvc interface {
	ConvertAmount(ctx context.Context, amount decimal.Decimal, targets []string) (*domain.ConversionResult, error)
}
