package normalize

import "strings"

var techDelimiters = func(r rune) bool {
	return r == ',' || r == ';' || r == '|' || r == '\n'
}

// Technologies normalizes a technology list that may arrive as an array, an
// object (keys with truthy values are kept), or a delimited string. Entries
// shorter than 2 characters and null-ish values are dropped. Returns nil when
// nothing usable remains.
func Technologies(v any) []string {
	var out []string
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range t {
			if s := SanitizeString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range t {
			if s := SanitizeString(item); s != "" {
				out = append(out, s)
			}
		}
	case map[string]any:
		for key, val := range t {
			if truthy(val) {
				if s := SanitizeString(key); s != "" {
					out = append(out, s)
				}
			}
		}
	case string:
		for _, part := range strings.FieldsFunc(t, techDelimiters) {
			part = strings.TrimSpace(part)
			if len(part) >= 2 {
				out = append(out, part)
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	case float64:
		return t == 1
	case int:
		return t == 1
	}
	return false
}
