package domain

import "strings"

// NormalizeTargets trims and upper-cases every code, dropping blanks and duplicates.
// The order of first occurrence is kept.
func NormalizeTargets(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		code := strings.ToUpper(strings.TrimSpace(t))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

// ResolveTargets returns the default set when targets is empty and the normalized list otherwise.
// A non-empty list that normalizes to nothing stays empty.
func ResolveTargets(targets []string) []string {
	if len(targets) == 0 {
		return append([]string(nil), DefaultCurrencies...)
	}
	return NormalizeTargets(targets)
}

// SplitTargets parses a comma separated query value. An empty value yields nil.
func SplitTargets(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}
