package pipeline

import "sort"

// sortedKeys returns a map's keys in ascending order, used wherever pipeline
// output (layouts, registry contents) needs to be deterministic across runs
// despite Go's randomized map iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
