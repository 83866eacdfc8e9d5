// Engine lifecycle: open from a stored snapshot, export back to it, degrade
// to an in-memory instance when the durable path is unusable.
package engine

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// engineFileName is the scratch database file inside the data directory.
// The file is working state only; the durable copy is the base64 snapshot
// in the key-value store.
const engineFileName = "engine.db"

// Engine owns the embedded SQLite instance and its durable encoding. One
// Engine is constructed at process start and passed by reference to the
// repositories and the synchronization service.
type Engine struct {
	mu      sync.RWMutex
	kv      *kvstore.Store
	db      *sql.DB
	dbPath  string
	durable bool
	logger  *log.Logger

	// columns caches PRAGMA table_info results per table, under its own
	// lock so cache fills are safe during shared-lock reads.
	colMu   sync.Mutex
	columns map[string][]string
}

// Open initializes the engine against the key-value store. If a snapshot is
// present under the fixed key it is decoded and the engine opens against
// that image; otherwise a fresh database is created and the schema applied.
//
// When the durable path cannot be used, Open falls back to an in-memory
// instance with schema applied so that callers keep functioning without
// persistence; only when even that fails does it return ErrEngineInit.
// A corrupt snapshot is not silently discarded: Open returns
// ErrSerialization and leaves the stored snapshot untouched.
func Open(kv *kvstore.Store, dataDir string, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[engine] ", log.LstdFlags)
	}

	e := &Engine{
		kv:      kv,
		dbPath:  filepath.Join(dataDir, engineFileName),
		durable: true,
		logger:  logger,
		columns: make(map[string][]string),
	}

	snap, hasSnapshot := kv.Get(kvstore.KeySnapshot)
	if hasSnapshot && snap != "" {
		raw, err := base64.StdEncoding.DecodeString(snap)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding engine snapshot: %v", types.ErrSerialization, err)
		}
		if err := os.WriteFile(e.dbPath, raw, 0o644); err != nil {
			return e.fallback(fmt.Errorf("restoring engine file: %w", err))
		}
		db, err := openFile(e.dbPath)
		if err != nil {
			// The bytes decoded but are not a usable database image. This
			// is corrupt data, not an environment problem, so it surfaces
			// instead of degrading; the stored snapshot stays untouched.
			return nil, fmt.Errorf("%w: opening restored engine snapshot: %v", types.ErrSerialization, err)
		}
		e.db = db
		return e, nil
	}

	// No prior snapshot: fresh database with schema.
	db, err := openFile(e.dbPath)
	if err != nil {
		return e.fallback(err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return e.fallback(err)
	}
	e.db = db
	return e, nil
}

// fallback opens an in-memory engine with schema applied, trading
// persistence for availability.
func (e *Engine) fallback(cause error) (*Engine, error) {
	e.logger.Printf("engine degraded to in-memory mode: %v", cause)

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEngineInit, cause)
	}
	// A single connection keeps the in-memory database alive and matches
	// the single-writer model.
	db.SetMaxOpenConns(1)
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", types.ErrEngineInit, err)
	}

	e.db = db
	e.durable = false
	return e, nil
}

// openFile opens the scratch database file with a single connection.
func openFile(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening engine file: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening engine file: %w", err)
	}
	return db, nil
}

// applySchema runs every DDL statement. All statements use IF NOT EXISTS,
// so re-applying is error-free.
func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

// Durable reports whether mutations reach the key-value snapshot. False
// means the engine is running in-memory after a failed open.
func (e *Engine) Durable() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.durable
}

// PersistSnapshot exports the engine's current state, base64-encodes it, and
// writes it to the fixed key-value slot. Mutating operations call this on
// success before returning, so a completed call means the data survived the
// process.
func (e *Engine) PersistSnapshot() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persistSnapshotLocked()
}

// persistSnapshotLocked exports via VACUUM INTO a temp file, reads the
// bytes, and stores them base64-encoded. The caller must hold e.mu.
func (e *Engine) persistSnapshotLocked() error {
	if e.db == nil {
		return types.ErrEngineUnavailable
	}
	if !e.durable {
		// In-memory mode keeps working but cannot promise durability.
		return nil
	}

	tmp := e.dbPath + ".snapshot.tmp"
	os.Remove(tmp)
	if _, err := e.db.Exec("VACUUM INTO ?", tmp); err != nil {
		return fmt.Errorf("%w: exporting engine snapshot: %v", types.ErrSerialization, err)
	}
	raw, err := os.ReadFile(tmp)
	os.Remove(tmp)
	if err != nil {
		return fmt.Errorf("%w: reading engine snapshot: %v", types.ErrSerialization, err)
	}

	return e.kv.Set(kvstore.KeySnapshot, base64.StdEncoding.EncodeToString(raw))
}

// Close releases the database handle. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// tableColumns returns the column names of a table, cached after first use.
// The caller must hold e.mu (read or write).
func (e *Engine) tableColumns(table string) ([]string, error) {
	e.colMu.Lock()
	defer e.colMu.Unlock()
	if cols, ok := e.columns[table]; ok {
		return cols, nil
	}

	rows, err := e.db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("%w: reading schema for %s: %v", types.ErrQuery, table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info for %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no such table: %s", types.ErrQuery, table)
	}

	e.columns[table] = cols
	return cols, nil
}
