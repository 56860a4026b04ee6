package services

import (
	"math"

	"github.com/SscSPs/aud_rates_app/internal/core/domain"
)

// RebaseToAUD converts rates quoted against any base into rates quoted against AUD:
// out[k] = rates[k] / rates["AUD"], with out["AUD"] forced to exactly 1.
//
// Degenerate inputs are passed through: without an AUD entry every other value is NaN,
// and an AUD entry of 0 yields ±Inf. The input map is not modified.
func RebaseToAUD(rates map[string]float64) domain.RateMap {
	rAUD, ok := rates[domain.BaseCurrency]
	if !ok {
		rAUD = math.NaN()
	}
	out := make(domain.RateMap, len(rates)+1)
	for code, v := range rates {
		out[code] = v / rAUD
	}
	out[domain.BaseCurrency] = 1
	return out
}
