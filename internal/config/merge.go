package config

import "fmt"

// cloneValue creates a deep copy of a decoded JSON/YAML value. yaml.v3
// decodes mappings with non-string keys as map[any]any; those get string
// keys so the value stays JSON encodable.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = cloneValue(item)
		}
		return out
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneSlice(s []any) []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}

// getByPath retrieves a nested map value by path segments.
func getByPath(data map[string]any, path ...string) (any, bool) {
	current := any(data)
	for _, part := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}

// setByPath sets a nested map value, creating or replacing intermediate
// maps as needed.
func setByPath(data map[string]any, value any, path ...string) {
	if data == nil || len(path) == 0 {
		return
	}
	current := data
	for _, part := range path[:len(path)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}
