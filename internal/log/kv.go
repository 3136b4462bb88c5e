package log

import "sort"

// KV holds the key-value pairs attached to a single log entry.
type KV map[string]any

// kvToArgs flattens the given KV maps into the alternating key-value slice
// slog expects. Keys are sorted within each map so log output is stable;
// when the same key appears in more than one map, the first occurrence wins.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	seen := map[string]bool{}

	for _, kv := range keyVals {
		keys := make([]string, 0, len(kv))
		for key := range kv {
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			args = append(args, key, kv[key])
		}
	}

	return args
}

// kvToArgsNs is like kvToArgs but prepends the namespace as the first
// key-value pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
