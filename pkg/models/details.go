package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedValue is returned when a details document holds a value outside
// the supported set: string, number, bool, nil, list and nested document.
var ErrUnsupportedValue = errors.New("unsupported details value")

// Details is the opaque per-match payload produced by a scrape provider.
// The cache stores and serves it keyed by LiveMatch.DetailRef and never looks inside.
type Details map[string]interface{}

// NormalizeDetails returns a deep copy of raw restricted to the supported value set.
// Integer kinds are widened to float64 so every number has a single representation.
func NormalizeDetails(raw map[string]interface{}) (Details, error) {
	doc, err := normalizeMap(raw, "")
	if err != nil {
		return nil, err
	}
	return Details(doc), nil
}

func normalizeMap(m map[string]interface{}, path string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		nv, err := normalizeValue(v, joinPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeValue(v interface{}, path string) (interface{}, error) {
	switch val := v.(type) {
	case nil, string, bool, float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case map[string]interface{}:
		return normalizeMap(val, path)
	case Details:
		return normalizeMap(val, path)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			nv, err := normalizeValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, nil
	case []map[string]interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			nv, err := normalizeMap(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T at %q", ErrUnsupportedValue, v, path)
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
