package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// legalSuffixRe matches a trailing legal entity suffix, optionally followed by
// a period, preceded by whitespace or a comma.
var legalSuffixRe = regexp.MustCompile(`(?i)[\s,]+(inc|incorporated|corp|corporation|ltd|limited|llc|llp|lp|plc|co|bv|b\.v|nv|n\.v|gmbh|ag|sa|sas|sarl|srl|pty|oy|ab|aps|as|kk)\.?$`)

var nameSpaceRe = regexp.MustCompile(`\s{2,}`)

var titleCaser = cases.Title(language.English)

// CompanyName strips a trailing legal-entity suffix, collapses whitespace,
// and Title-Cases each word. "Acme Corp." becomes "Acme".
func CompanyName(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}

	s = legalSuffixRe.ReplaceAllString(s, "")
	s = strings.TrimRight(s, " ,")
	s = nameSpaceRe.ReplaceAllString(s, " ")
	if s == "" {
		return ""
	}

	return titleCaser.String(strings.ToLower(s))
}
