package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nonRangeCharsRe = regexp.MustCompile(`[^\d-]`)

// Number parses a numeric value that may arrive as a range ("10-50" resolves
// to the rounded midpoint 30) or a plain number. The second return reports
// whether parsing succeeded.
func Number(v string) (int, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, "-") && !strings.HasPrefix(s, "-") {
		stripped := nonRangeCharsRe.ReplaceAllString(s, "")
		parts := strings.SplitN(stripped, "-", 2)
		if len(parts) == 2 {
			lo, errLo := strconv.ParseFloat(parts[0], 64)
			hi, errHi := strconv.ParseFloat(parts[1], 64)
			if errLo == nil && errHi == nil {
				return int(math.Round((lo + hi) / 2)), true
			}
		}
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}
