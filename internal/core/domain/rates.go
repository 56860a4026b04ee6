package domain

import (
	"encoding/json"
	"math"
)

// BaseCurrency is the currency every re-based rate is quoted against.
const BaseCurrency = "AUD"

// DefaultCurrencies is used whenever a caller supplies no target currencies.
var DefaultCurrencies = []string{"USD", "EUR", "JPY", "GBP", "CNY"}

// RateSnapshot is one point-in-time rate table as returned by the upstream provider.
type RateSnapshot struct {
	Timestamp  int64              `json:"timestamp"`  // Unix seconds
	Base       string             `json:"base"`       // Usually "USD"
	Rates      map[string]float64 `json:"rates"`      // Currency code -> rate against Base
	Disclaimer string             `json:"disclaimer,omitempty"`
	License    string             `json:"license,omitempty"`
}

// RateMap maps currency codes to rates.
// NaN and ±Inf are legal values and encode as JSON null.
type RateMap map[string]float64

// MarshalJSON implements json.Marshaler.
func (m RateMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(m))
	for code, v := range m {
		out[code] = finiteOrNil(v)
	}
	return json.Marshal(out)
}

// LatestRates is the AUD-based subset of the newest snapshot for a set of targets.
type LatestRates struct {
	Base      string  `json:"base"`
	Timestamp int64   `json:"timestamp"`
	Rates     RateMap `json:"rates"`
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
