package dto

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
)

const (
	// DefaultHistoryDays is used when days is missing, zero or not a number.
	DefaultHistoryDays = 14
	// MinHistoryDays and MaxHistoryDays bound the requested window.
	MinHistoryDays = 1
	MaxHistoryDays = 60

	// OrientByCurrency selects the per-currency series layout.
	OrientByCurrency = "bycurrency"
)

// LatestRatesQuery holds the query parameters of GET /rates/latest.
type LatestRatesQuery struct {
	Targets string `form:"targets"` // Comma separated currency codes
}

// HistoryQuery holds the query parameters of GET /rates/history.
type HistoryQuery struct {
	Days   string `form:"days"`
	Orient string `form:"orient"`
}

// ClampedDays parses Days as a number, falling back to DefaultHistoryDays when it is
// missing, zero or not a number. The value is clamped to [MinHistoryDays, MaxHistoryDays]
// and truncated to whole days.
func (q HistoryQuery) ClampedDays() int {
	days, err := strconv.ParseFloat(strings.TrimSpace(q.Days), 64)
	// Out of range input yields ±Inf or 0 together with ErrRange.
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || days == 0 || math.IsNaN(days) {
		return DefaultHistoryDays
	}
	return int(math.Max(MinHistoryDays, math.Min(MaxHistoryDays, days)))
}

// ByCurrency reports whether the currency-major layout was requested. It is the default.
func (q HistoryQuery) ByCurrency() bool {
	orient := strings.ToLower(strings.TrimSpace(q.Orient))
	return orient == "" || orient == OrientByCurrency
}

// ConvertQuery holds the query parameters of GET /rates/convert.
type ConvertQuery struct {
	Amount  string `form:"amount" binding:"required,numeric"`
	Targets string `form:"targets"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LatestRatesResponse defines the body of GET /rates/latest.
type LatestRatesResponse struct {
	Base      string         `json:"base"`
	Timestamp int64          `json:"timestamp"`
	Rates     domain.RateMap `json:"rates" swaggertype:"object,number"`
}

// ToLatestRatesResponse converts domain.LatestRates to LatestRatesResponse DTO
func ToLatestRatesResponse(latest *domain.LatestRates) LatestRatesResponse {
	return LatestRatesResponse{
		Base:      latest.Base,
		Timestamp: latest.Timestamp,
		Rates:     latest.Rates,
	}
}

// HistoryTableResponse defines the raw, date-major body of GET /rates/history.
type HistoryTableResponse struct {
	Base      string              `json:"base"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Points    []domain.HistoryRow `json:"points" swaggertype:"array,object"`
}

// ToHistoryTableResponse converts domain.HistoryTable to HistoryTableResponse DTO
func ToHistoryTableResponse(table *domain.HistoryTable) HistoryTableResponse {
	return HistoryTableResponse{
		Base:      table.Base,
		StartDate: table.StartDate,
		EndDate:   table.EndDate,
		Points:    table.Points,
	}
}

// HistorySeriesResponse defines the currency-major body of GET /rates/history.
type HistorySeriesResponse struct {
	Base      string           `json:"base"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Series    domain.SeriesMap `json:"series" swaggertype:"object"`
}

// ToHistorySeriesResponse pairs the bounds of table with its transposed series.
func ToHistorySeriesResponse(table *domain.HistoryTable, series domain.SeriesMap) HistorySeriesResponse {
	return HistorySeriesResponse{
		Base:      table.Base,
		StartDate: table.StartDate,
		EndDate:   table.EndDate,
		Series:    series,
	}
}

// ConvertedItemResponse is one target of a conversion. Rate and Amount are null when unavailable.
type ConvertedItemResponse struct {
	Code   string   `json:"code"`
	Rate   *float64 `json:"rate"`
	Amount *float64 `json:"amount"`
}

// ConvertResponse defines the body of GET /rates/convert.
type ConvertResponse struct {
	Base      string                  `json:"base"`
	Timestamp int64                   `json:"timestamp"`
	Amount    float64                 `json:"amount"`
	Targets   []ConvertedItemResponse `json:"targets"`
}

// ToConvertResponse converts domain.ConversionResult to ConvertResponse DTO
func ToConvertResponse(res *domain.ConversionResult) ConvertResponse {
	items := make([]ConvertedItemResponse, len(res.Targets))
	for i, t := range res.Targets {
		items[i] = ConvertedItemResponse{Code: t.Code, Rate: t.Rate}
		if t.Amount != nil {
			amount := t.Amount.InexactFloat64()
			items[i].Amount = &amount
		}
	}
	return ConvertResponse{
		Base:      res.Base,
		Timestamp: res.Timestamp,
		Amount:    res.Amount.InexactFloat64(),
		Targets:   items,
	}
}
