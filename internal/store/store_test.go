package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/tada/internal/store/kv/filekv"
	"github.com/idilsaglam/tada/internal/store/kv/sqlitekv"
)

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	fs, err := Open("file", filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := fs.(*filekv.Store); !ok {
		t.Fatalf("expected *filekv.Store, got %T", fs)
	}

	ss, err := Open("SQLite", filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer ss.Close()
	if _, ok := ss.(*sqlitekv.Store); !ok {
		t.Fatalf("expected *sqlitekv.Store, got %T", ss)
	}
	if err := ss.Set(context.Background(), "user", "{}"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "db", "tada.db")); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	if _, err := Open("redis", dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
