// Package layering composes and copies raw option snapshots. Loaders merge
// defaults, user, and workspace maps with Merge before handing the result to
// a store; the store uses Clone to keep snapshots detached from its slots.
package layering

// Clone deep-copies an option value. Maps and slices are detached from the
// original; scalars pass through.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case map[string]bool:
		out := make(map[string]bool, len(typed))
		for key, item := range typed {
			out[key] = item
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Clone(item)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	default:
		return value
	}
}

// CloneMap deep-copies a string-keyed snapshot. A nil input stays nil.
func CloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = Clone(value)
	}
	return out
}

// Merge composes snapshots ordered weakest to strongest: later overlays win
// per key, and string-keyed maps merge recursively instead of replacing
// wholesale. The inputs are never mutated.
func Merge(base map[string]any, overlays ...map[string]any) map[string]any {
	out := CloneMap(base)
	if out == nil {
		out = map[string]any{}
	}
	for _, overlay := range overlays {
		for key, value := range overlay {
			existing, ok := out[key]
			if ok {
				existingMap, okExisting := existing.(map[string]any)
				overlayMap, okOverlay := value.(map[string]any)
				if okExisting && okOverlay {
					out[key] = Merge(existingMap, overlayMap)
					continue
				}
			}
			out[key] = Clone(value)
		}
	}
	return out
}
