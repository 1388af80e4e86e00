// Package normalize holds pure canonicalization functions for one data domain
// each: string sanitation, phone numbers, domains, company names, geography,
// numeric ranges, and technology lists. Every function is side-effect free and
// returns the zero value when the input cannot be normalized.
package normalize

import (
	"strconv"
	"strings"
)

// SanitizeString trims a raw value and drops null-ish placeholders. Numbers
// are stringified first. Returns "" for anything unusable.
func SanitizeString(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case float64:
		if t == float64(int64(t)) {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return ""
	}

	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "undefined":
		return ""
	}
	return s
}
