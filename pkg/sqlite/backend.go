// Package sqlite provides the public API for the SQLite board store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
//
// The returned types.BoardStore saves boards with their layer names, lists
// and footprint children, and loads them into a caller-supplied Arena.
// Board ids are UUID v7 strings assigned on first save. All data lives in a
// single boards.db file under Config.DataDir.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/pcbcore/internal/sqlite"
	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// NewBackend creates a new SQLite board store. A nil logger discards
// diagnostics. The store is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	store := sqlite.NewBackend(logger)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".pcbcore-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.BoardStore {
	return sqlite.NewBackend(logger)
}
