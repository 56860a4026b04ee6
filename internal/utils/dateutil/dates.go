// Package dateutil builds windows of UTC calendar dates.
package dateutil

import "time"

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

// BuildPastDatesUTC returns the last days UTC calendar dates ending today, oldest first.
func BuildPastDatesUTC(days int) []string {
	return PastDatesUTC(time.Now(), days)
}

// PastDatesUTC is BuildPastDatesUTC anchored at now instead of the wall clock.
// Only the UTC calendar date of now is used.
func PastDatesUTC(now time.Time, days int) []string {
	if days <= 0 {
		return []string{}
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	return out
}
