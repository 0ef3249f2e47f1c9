package query

import "strings"

// Record is a flight or booking entity addressed by dot-separated field paths.
// The engine only reads records.
type Record map[string]any

// Get resolves a dot-separated path such as "passenger_details.passenger_name".
// It reports false as soon as a segment is missing, nil, or not a mapping.
func Get(r Record, path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}

	var cur any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		next, ok := m[segment]
		if !ok || next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}
