package domain

import "encoding/json"

// HistoryRow holds the AUD-based rates of one day in a window.
// A row with Error set carries no rates.
type HistoryRow struct {
	Date  string
	Rates map[string]float64
	Error string
}

// Failed reports whether the day could not be fetched.
func (r HistoryRow) Failed() bool {
	return r.Error != ""
}

// Value returns the rate for code, if the row has one.
func (r HistoryRow) Value(code string) (float64, bool) {
	if r.Failed() {
		return 0, false
	}
	v, ok := r.Rates[code]
	return v, ok
}

// MarshalJSON flattens the row to {"date": ..., "USD": ..., "error": ...}.
func (r HistoryRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Rates)+2)
	for code, v := range r.Rates {
		out[code] = finiteOrNil(v)
	}
	out["date"] = r.Date
	if r.Failed() {
		out["error"] = r.Error
	}
	return json.Marshal(out)
}

// HistoryTable is the date-major layout of a window, ascending by date.
type HistoryTable struct {
	Base      string       `json:"base"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Points    []HistoryRow `json:"points"`
}

// SeriesPoint is one dated value of a per-currency series.
type SeriesPoint struct {
	Date  string
	Value float64
}

// MarshalJSON implements json.Marshaler, encoding non-finite values as null.
func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}{Date: p.Date, Value: finiteOrNil(p.Value)})
}

// SeriesMap is the currency-major layout of a window.
type SeriesMap map[string][]SeriesPoint
