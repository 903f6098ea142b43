// Package sqlite implements the SQLite store for board documents.
//
// A Backend keeps every board in one database file, boards.db, inside the
// configured data directory. The schema has three tables: boards holds the
// document row keyed by a UUID v7, layer_names holds per-board layer name
// overrides and items holds one row per item in persistence order. Footprint
// children reference their footprint by ordinal; every other item is stored
// at board level. SaveBoard replaces the stored copy in one transaction.
//
// Attach opens the database and creates missing tables; Detach closes it.
// Operations on a detached Backend return types.ErrStoreDetached.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// DatabaseFile is the file name of the store inside the data directory.
const DatabaseFile = "boards.db"

// Backend stores board documents in a SQLite database. It is safe for
// concurrent use; the boards it returns are not.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
}

var _ types.BoardStore = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance. A nil logger discards
// diagnostics. The backend is not attached; call Attach with a Config to
// initialize.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger}
}

// Attach opens the database in config.DataDir, creating the directory and
// schema as needed. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug("store attached", zap.String("path", dbPath))
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// generateUUID generates a new UUID v7 for board IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
