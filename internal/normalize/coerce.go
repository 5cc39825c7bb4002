package normalize

import (
	"math"
	"strconv"
	"strings"
)

// listEntry is one element of a list-shaped field. Key is set only for the
// object-of-entries encoding, where it doubles as a synthetic identifier
// fallback.
type listEntry struct {
	Key   string
	Value any
}

// asList accepts either encoding of a list-shaped field: a JSON array
// (element order preserved) or an object of entries (document key order
// preserved).
func asList(v any) []listEntry {
	switch t := v.(type) {
	case []any:
		entries := make([]listEntry, 0, len(t))
		for _, e := range t {
			entries = append(entries, listEntry{Value: e})
		}
		return entries
	case *Object:
		entries := make([]listEntry, 0, len(t.keys))
		for _, k := range t.keys {
			entries = append(entries, listEntry{Key: k, Value: t.fields[k]})
		}
		return entries
	default:
		return nil
	}
}

// field returns the first non-null value among the alias keys.
func field(obj *Object, aliases ...string) any {
	for _, key := range aliases {
		if v, ok := obj.Field(key); ok && v != nil {
			return v
		}
	}
	return nil
}

// toStringValue coerces to a trimmed string; empty strings and
// non-string/non-number values collapse to "".
func toStringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if !isFinite(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// toNumber coerces to a finite float64; anything else is nil, never NaN.
func toNumber(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if !isFinite(t) {
			return nil
		}
		return &t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// toInteger coerces to an int, truncating fractional parts.
func toInteger(v any) *int {
	f := toNumber(v)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// toBool coerces to a bool, falling back to def for anything non-boolean.
func toBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
		return def
	case float64:
		if t == 0 {
			return false
		}
		if t == 1 {
			return true
		}
		return def
	default:
		return def
	}
}

func numberOrZero(v any) float64 {
	if f := toNumber(v); f != nil {
		return *f
	}
	return 0
}

func intOrZero(v any) int {
	if i := toInteger(v); i != nil {
		return *i
	}
	return 0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
