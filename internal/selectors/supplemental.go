package selectors

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Supplemental documents are stored as plain maps/slices with opaque
// shapes; these small readers keep that tolerance local to the selectors
// that consume them.

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func anyList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		// Object-of-entries; sort keys for a stable order since plain maps
		// carry no document order.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, t[k])
		}
		return out
	default:
		return nil
	}
}

func mapString(m map[string]any, keys ...string) string {
	switch t := firstOf(m, keys...).(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func mapNumber(m map[string]any, keys ...string) *float64 {
	switch t := firstOf(m, keys...).(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func stringList(v any) []string {
	var out []string
	for _, e := range anyList(v) {
		switch t := e.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s := mapString(t, "player", "name", "player_name"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
