package mapping

import (
	"fmt"
	"sort"

	"graph-copier/internal/common"
)

// ParameterNames returns the unique dotted paths of the values carried by a nested request.
// Nested maps are descended into; a list is descended into through its first element when
// that element is a map and is a value otherwise. Map keys are visited in sorted order,
// and paths keep the order of their first appearance.
func ParameterNames(values map[string]any) []string {
	var names []string

	seen := make(map[string]bool)
	collectNames(values, "", &names, seen)

	return names
}

func collectNames(values map[string]any, prefix string, names *[]string, seen map[string]bool) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := asMap(values[key]); ok {
			collectNames(nested, path, names, seen)
			continue
		}

		if list, ok := values[key].([]any); ok {
			if first, ok := common.First(list); ok {
				if nested, ok := asMap(first); ok {
					collectNames(nested, path, names, seen)
					continue
				}
			}
		}

		if !seen[path] {
			seen[path] = true
			*names = append(*names, path)
		}
	}
}

// asMap accepts the map shapes decoders produce: map[string]any and map[any]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		res := make(map[string]any, len(m))
		for k, val := range m {
			res[fmt.Sprint(k)] = val
		}

		return res, true
	}

	return nil, false
}
