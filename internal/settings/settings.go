// Package settings implements the non-destructive merge used to project
// profile settings into a live Claude Code settings document.
package settings

// Merge deep-merges patch into base and returns a new document.
// Neither input is mutated.
//
// Merge rules, applied key by key:
//   - both values are objects: merge recursively
//   - otherwise: the patch value replaces the base value (arrays included)
//
// Keys present only in base survive untouched, which is what makes
// activation non-destructive: settings a profile does not mention are
// preserved.
func Merge(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range patch {
		if bv, ok := out[k].(map[string]any); ok {
			if pv, ok := v.(map[string]any); ok {
				out[k] = Merge(bv, pv)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

// Apply merges patch into base when patch is an object; any other patch
// value leaves base unchanged. Callers hold settings as `any` after JSON
// decoding, so this is the tolerant entry point.
func Apply(base map[string]any, patch any) map[string]any {
	p, ok := patch.(map[string]any)
	if !ok {
		return Merge(base, nil)
	}
	return Merge(base, p)
}

// Clone returns a deep copy of a settings document.
func Clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return Clone(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		// JSON scalars (string, float64, bool, nil) are immutable.
		return v
	}
}
