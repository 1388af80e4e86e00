package normalize

import (
	"net/url"
	"strings"
)

// ExtractDomain pulls a bare hostname out of an email address, URL, or plain
// domain string. The result keeps the input's letter casing; use Domain for
// the canonical lower-case identity key. Returns "" when no plausible domain
// can be found.
func ExtractDomain(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}

	if at := strings.LastIndex(s, "@"); at >= 0 {
		s = s[at+1:]
	}

	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
			s = u.Hostname()
		} else {
			// Manual fallback for inputs url.Parse chokes on.
			s = s[strings.Index(s, "://")+3:]
			if i := strings.IndexAny(s, "/?#"); i >= 0 {
				s = s[:i]
			}
		}
	} else if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}

	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		s = s[4:]
	}
	s = strings.TrimSuffix(s, ".")

	if !strings.Contains(s, ".") || len(s) <= 3 || strings.Contains(s, " ") {
		return ""
	}
	return s
}

// Domain is ExtractDomain lower-cased: the canonical company identity key.
// Idempotent: Domain(Domain(x)) == Domain(x).
func Domain(v string) string {
	return strings.ToLower(ExtractDomain(v))
}
