package style

import (
	"fmt"
	"sort"
)

// plainValue deep-copies a decoded JSON/YAML value. Mappings with
// non-string keys, as yaml.v3 produces for `{1: a}`, get string keys.
func plainValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return plainMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainValue(item)
		}
		return out
	default:
		return val
	}
}

func plainMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func asMap(val any) (map[string]any, bool) {
	switch val.(type) {
	case map[string]any, map[any]any:
		m, _ := plainValue(val).(map[string]any)
		return m, true
	}
	return nil, false
}

// mergeValue merges src into dst. Mappings merge key by key, anything else
// is replaced.
func mergeValue(dst, src any) any {
	d, dok := asMap(dst)
	s, sok := asMap(src)
	if !dok || !sok {
		return plainValue(src)
	}
	for k, v := range s {
		d[k] = mergeValue(d[k], v)
	}
	return d
}

// withExtra returns a copy of extra with value merged under key.
func withExtra(extra map[string]any, key string, value any) map[string]any {
	out := plainMap(extra)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out[key] = mergeValue(out[key], value)
	return out
}

// Prune removes unknown surfaces and properties for which keep returns
// false. It returns the pruned styles and the dotted paths it removed.
func (s Styles) Prune(keep func(v any) bool) (Styles, []string) {
	s = s.Clone()
	var dropped []string
	for _, k := range sortedKeys(s.Extra) {
		if !keep(s.Extra[k]) {
			delete(s.Extra, k)
			dropped = append(dropped, k)
		}
	}
	for _, surface := range Surfaces() {
		ss := s.Get(surface)
		for _, k := range sortedKeys(ss.Extra) {
			if !keep(ss.Extra[k]) {
				delete(ss.Extra, k)
				dropped = append(dropped, string(surface)+"."+k)
			}
		}
		s.put(surface, ss)
	}
	return s, dropped
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
