package hydrate

import (
	"errors"
	"strings"
	"testing"
)

type serverSettings struct {
	Port    int    `json:"port"`
	Host    string `json:"host"`
	Verbose bool   `json:"verbose"`
}

func TestDecodeBasic(t *testing.T) {
	decoder := NewDecoder[serverSettings]()
	ctx := Context{Domain: "server", Source: "store"}

	result, err := decoder.Decode(ctx, map[string]any{
		"port":    9090,
		"host":    "example.test",
		"verbose": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Port != 9090 || result.Host != "example.test" || !result.Verbose {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDecodeNilSnapshot(t *testing.T) {
	decoder := NewDecoder[serverSettings]()
	_, err := decoder.Decode(Context{Domain: "server"}, nil)
	if err == nil || !strings.Contains(err.Error(), "snapshot is nil") {
		t.Fatalf("expected nil snapshot error, got %v", err)
	}
}

func TestDecodePreHookMutatesSnapshot(t *testing.T) {
	decoder := NewDecoder(WithPreHook[serverSettings](func(_ Context, snapshot map[string]any) (map[string]any, error) {
		snapshot["host"] = "rewritten"
		return snapshot, nil
	}))

	original := map[string]any{"host": "original"}
	result, err := decoder.Decode(Context{Domain: "server"}, original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Host != "rewritten" {
		t.Fatalf("expected pre-hook rewrite, got %q", result.Host)
	}
	// The caller's snapshot is cloned before hooks run.
	if original["host"] != "original" {
		t.Fatalf("pre-hook must not mutate the caller's snapshot")
	}
}

func TestDecodePostHookValidates(t *testing.T) {
	boom := errors.New("port out of range")
	decoder := NewDecoder(WithPostHook[serverSettings](func(_ Context, result *serverSettings) error {
		if result.Port > 65535 {
			return boom
		}
		return nil
	}))

	_, err := decoder.Decode(Context{Domain: "server"}, map[string]any{"port": 99999})
	if !errors.Is(err, boom) {
		t.Fatalf("expected post-hook error, got %v", err)
	}
}

func TestDecodeDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder(WithDisallowUnknownFields[serverSettings]())

	_, err := decoder.Decode(Context{Domain: "server"}, map[string]any{
		"port":    1,
		"unknown": "value",
	})
	if err == nil {
		t.Fatalf("expected unknown field rejection")
	}
}

func TestDecodeCustomDecoder(t *testing.T) {
	decoder := NewDecoder(WithCustomDecoder[serverSettings](func(ctx Context, snapshot map[string]any) (serverSettings, error) {
		return serverSettings{Host: ctx.Domain}, nil
	}))

	result, err := decoder.Decode(Context{Domain: "custom"}, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Host != "custom" {
		t.Fatalf("expected custom decoder output, got %+v", result)
	}
}
