package lastfm

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// object is a decoded JSON object. A nil object behaves as an empty one,
// so lookups chain through missing keys without checks.
type object map[string]any

// has reports whether key is present with a non-null value.
func (o object) has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// obj returns the nested object under key, or nil.
func (o object) obj(key string) object {
	if m, ok := o[key].(map[string]any); ok {
		return object(m)
	}
	return nil
}

// path follows nested objects key by key.
func (o object) path(keys ...string) object {
	cur := o
	for _, k := range keys {
		cur = cur.obj(k)
	}
	return cur
}

// list returns the objects under key. The service sends a lone object
// instead of a one-element array for some collections, so a bare object
// is returned as a one-element list. Non-object elements are skipped.
// The result is never nil.
func (o object) list(key string) []object {
	switch v := o[key].(type) {
	case []any:
		out := make([]object, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, object(m))
			}
		}
		return out
	case map[string]any:
		return []object{object(v)}
	default:
		return []object{}
	}
}

// str returns the value under key as text. Numbers and booleans are
// formatted; objects, arrays and missing keys yield "".
func (o object) str(key string) string {
	return scalarText(o[key])
}

// strOr returns the first non-empty text among keys.
func (o object) strOr(keys ...string) string {
	for _, k := range keys {
		if s := o.str(k); s != "" {
			return s
		}
	}
	return ""
}

// integer returns the value under key as an int. Numeric strings are
// parsed; anything unparsable yields 0.
func (o object) integer(key string) int {
	n, _ := scalarInt(o[key])
	return n
}

// lookupInt is integer with a presence flag. The flag is false when the
// key is missing or its value cannot be read as a number.
func (o object) lookupInt(key string) (int, bool) {
	return scalarInt(o[key])
}

// float returns the value under key as a float64, or 0.
func (o object) float(key string) float64 {
	switch v := o[key].(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}

// unix returns the UNIX-seconds value under key as a UTC time, or the
// epoch when absent.
func (o object) unix(key string) time.Time {
	return time.Unix(int64(o.integer(key)), 0).UTC()
}

func scalarText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func scalarInt(v any) (int, bool) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		if f, err := v.Float64(); err == nil {
			return int(math.Trunc(f)), true
		}
	case float64:
		return int(math.Trunc(v)), true
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return int(n), true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Trunc(f)), true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// mapEach decodes every object in list with fn. The result is never nil.
func mapEach[T any](list []object, fn func(map[string]any) T) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		out = append(out, fn(item))
	}
	return out
}
