package layering

import (
	"testing"
)

func TestCloneDetachesContainers(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"a": 1},
		"list":   []any{"x", "y"},
		"flags":  map[string]bool{"on": true},
		"items":  []string{"src"},
	}

	cloned := Clone(original).(map[string]any)

	cloned["nested"].(map[string]any)["a"] = 2
	cloned["list"].([]any)[0] = "mutated"
	cloned["flags"].(map[string]bool)["on"] = false
	cloned["items"].([]string)[0] = "mutated"

	if original["nested"].(map[string]any)["a"] != 1 {
		t.Fatalf("nested map must be detached")
	}
	if original["list"].([]any)[0] != "x" {
		t.Fatalf("list must be detached")
	}
	if !original["flags"].(map[string]bool)["on"] {
		t.Fatalf("flags must be detached")
	}
	if original["items"].([]string)[0] != "src" {
		t.Fatalf("string slice must be detached")
	}
}

func TestCloneScalarsPassThrough(t *testing.T) {
	if Clone(42) != 42 {
		t.Fatalf("scalar must pass through")
	}
	if Clone(nil) != nil {
		t.Fatalf("nil must pass through")
	}
}

func TestCloneMapNilStaysNil(t *testing.T) {
	if CloneMap(nil) != nil {
		t.Fatalf("nil map must stay nil")
	}
}

func TestMergeOverlaysWinPerKey(t *testing.T) {
	base := map[string]any{
		"port": 8080,
		"host": "localhost",
	}
	user := map[string]any{
		"port": 9090,
	}
	workspace := map[string]any{
		"port": 443,
		"tls":  true,
	}

	merged := Merge(base, user, workspace)

	if merged["port"] != 443 {
		t.Fatalf("strongest overlay must win, got %v", merged["port"])
	}
	if merged["host"] != "localhost" {
		t.Fatalf("untouched base keys must survive, got %v", merged["host"])
	}
	if merged["tls"] != true {
		t.Fatalf("overlay-only keys must appear, got %v", merged["tls"])
	}

	// Inputs are never mutated.
	if base["port"] != 8080 || len(user) != 1 {
		t.Fatalf("merge must not mutate inputs")
	}
}

func TestMergeRecursesIntoMaps(t *testing.T) {
	base := map[string]any{
		"logging": map[string]any{"level": "info", "format": "json"},
	}
	overlay := map[string]any{
		"logging": map[string]any{"level": "debug"},
	}

	merged := Merge(base, overlay)

	logging := merged["logging"].(map[string]any)
	if logging["level"] != "debug" {
		t.Fatalf("overlay leaf must win, got %v", logging["level"])
	}
	if logging["format"] != "json" {
		t.Fatalf("base leaf must survive, got %v", logging["format"])
	}
}

func TestMergeNilBase(t *testing.T) {
	merged := Merge(nil, map[string]any{"a": 1})
	if merged["a"] != 1 {
		t.Fatalf("expected overlay applied to empty base, got %v", merged)
	}
}
