// Package store picks the durable kv backend named by configuration.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/tada/internal/store/kv"
	"github.com/idilsaglam/tada/internal/store/kv/filekv"
	"github.com/idilsaglam/tada/internal/store/kv/sqlitekv"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const sqliteFileName = "tada.db"

// Open returns the kv backend named kind rooted at dir.
func Open(kind, dir string) (kv.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendFile:
		return filekv.Open(dir)
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		return sqlitekv.Open(filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return kv.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", kind)
}
