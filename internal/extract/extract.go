// Package extract pulls canonical fields out of loosely-typed provider records.
//
// Provider exports disagree on key names for the same logical field; each
// canonical field carries an ordered synonym list (see fields.go) and the
// first key that yields a non-empty value wins. This is the only package that
// reads RawRecord directly; everything downstream works on typed drafts.
package extract

import (
	"strconv"
	"strings"

	"github.com/sells-group/lead-ingest/internal/model"
)

// Extract returns the value of a canonical field from a raw record, or ""
// when no synonym key holds a non-empty value. It never panics on odd shapes.
func Extract(rec model.RawRecord, field Field) string {
	for _, key := range synonyms[field] {
		if v := lookupPath(rec, key); v != "" {
			return v
		}
	}
	return ""
}

// ExtractRaw returns the untyped value at the first matching synonym key.
// Used for fields whose downstream normalizer accepts structured values
// (e.g. technologies may arrive as a list or a map).
func ExtractRaw(rec model.RawRecord, field Field) any {
	for _, key := range synonyms[field] {
		if v := lookupPathRaw(rec, key); v != nil {
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

// lookupPath resolves a possibly-dotted key against the record and coerces
// the result to a trimmed string.
func lookupPath(rec model.RawRecord, key string) string {
	return coerce(lookupPathRaw(rec, key))
}

func lookupPathRaw(rec model.RawRecord, key string) any {
	if !strings.Contains(key, ".") {
		return rec[key]
	}

	parts := strings.Split(key, ".")
	var cur any = map[string]any(rec)
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[p]
		if !ok {
			return nil
		}
	}
	return cur
}

// coerce turns scalar JSON values into trimmed strings. Non-scalar values
// yield "" so that a nested object under a scalar synonym key is ignored
// instead of stringified.
func coerce(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers decode as float64; render integers without a mantissa.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
