// Package kvtest holds the behavior every kv.Store backend must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/idilsaglam/tada/internal/store/kv"
)

// Run exercises s against the kv.Store contract.
func Run(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "user"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "user", `{"id":"1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "user")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if v != `{"id":"1"}` {
		t.Fatalf("expected stored value, got %q", v)
	}

	if err := s.Set(ctx, "user", "replaced"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "user"); v != "replaced" {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	if err := s.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, err := s.Get(ctx, "user"); err != nil || ok {
		t.Fatalf("expected key removed, got ok=%v err=%v", ok, err)
	}
	if err := s.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove missing key: %v", err)
	}

	if err := s.Set(ctx, "", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
	if err := s.Set(ctx, "../escape", "x"); err == nil {
		t.Fatal("expected error for key with separator")
	}
}
