// Package ingest drives a batch of raw provider records through the identity
// resolver: tolerant NDJSON parsing, fixed-size chunking with an inter-chunk
// delay, and a single retry pass over transient failures.
package ingest

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-ingest/internal/model"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// ParseLines splits raw text into non-blank lines and parses each as a JSON
// object. Lines that fail to parse get one repair attempt (strip trailing
// commas, quote bare keys); lines that still fail are dropped and counted,
// never fatal. An input with zero parseable lines is the one hard error.
func ParseLines(raw string) ([]model.RawRecord, int, error) {
	var (
		records []model.RawRecord
		dropped int
	)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, ok := parseLine(line)
		if !ok {
			dropped++
			zap.L().Warn("ingest: dropping unparsable line", zap.String("line", truncate(line, 120)))
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, dropped, eris.New("ingest: no parseable entries in input")
	}
	return records, dropped, nil
}

func parseLine(line string) (model.RawRecord, bool) {
	var rec model.RawRecord
	if err := json.Unmarshal([]byte(line), &rec); err == nil {
		return rec, true
	}
	repaired := repairLine(line)
	if err := json.Unmarshal([]byte(repaired), &rec); err != nil {
		return nil, false
	}
	return rec, true
}

// repairLine applies the two recoveries worth having for provider exports:
// trailing commas before a closing brace or bracket, and unquoted object keys.
func repairLine(line string) string {
	line = trailingCommaRe.ReplaceAllString(line, "$1")
	return bareKeyRe.ReplaceAllString(line, `$1"$2":`)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
