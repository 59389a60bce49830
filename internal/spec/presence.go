package spec

import "strings"

// IsPresent reports whether an optional field contributes to rendered output.
// Rules, in order: nil => absent; string => present iff trimmed non-empty;
// sequence or mapping => present iff non-empty; anything else (numbers,
// booleans) => present.
func IsPresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case []any:
		return len(x) > 0
	case []map[string]any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
