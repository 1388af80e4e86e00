package normalize

import "strings"

// DefaultCountryCode is the calling code assumed for national-format numbers.
// The trunk-prefix heuristic below is tuned for the Dutch numbering plan;
// numbers from other plans pass through on a best-effort basis only.
const DefaultCountryCode = "31"

// Phone canonicalizes a phone number into a +-prefixed digit string.
// Best-effort, not strict E.164 validation:
//   - separators (spaces, parentheses, dashes, dots) are stripped
//   - a 00 international prefix becomes +
//   - a number already starting with + passes through
//   - a bare country code (e.g. 31612345678) gains a +
//   - a national trunk 0 on a long enough number is replaced by +<cc>
//
// Returns "" when fewer than 8 digits remain.
func Phone(v string) string {
	return PhoneWithCountry(v, DefaultCountryCode)
}

// PhoneWithCountry is Phone with an explicit default country calling code.
func PhoneWithCountry(v, countryCode string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}

	s = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "", ".", "").Replace(s)

	switch {
	case strings.HasPrefix(s, "00"):
		s = "+" + s[2:]
	case strings.HasPrefix(s, "+"):
		// already international
	case strings.HasPrefix(s, countryCode) && len(s) >= len(countryCode)+8:
		s = "+" + s
	case strings.HasPrefix(s, "0") && len(s) >= 9:
		s = "+" + countryCode + s[1:]
	}

	if digitCount(s) < 8 {
		return ""
	}
	return s
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
