// Tests for engine lifecycle: open, snapshot export, restore, degraded mode.
package engine

import (
	"encoding/base64"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/pkg/types"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func openTestEngine(t *testing.T) (*kvstore.Store, *Engine) {
	t.Helper()
	dataDir := t.TempDir()
	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	eng, err := Open(kv, dataDir, quietLogger())
	if err != nil {
		t.Fatalf("opening engine: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	return kv, eng
}

func TestOpen_FreshDatabaseHasSchema(t *testing.T) {
	_, eng := openTestEngine(t)

	if !eng.Durable() {
		t.Error("expected fresh engine to be durable")
	}

	// Every schema table must answer a SELECT.
	for _, table := range []string{
		"users", "projects", "messages", "boq_items", "rfis",
		"lab_tests", "schedule_tasks", "daily_reports", "settings",
	} {
		rows, err := eng.Select(table, nil, "")
		if err != nil {
			t.Errorf("SELECT from %s failed: %v", table, err)
		}
		if len(rows) != 0 {
			t.Errorf("expected %s to be empty, got %d rows", table, len(rows))
		}
	}
}

func TestApplySchema_Reapplication(t *testing.T) {
	_, eng := openTestEngine(t)

	if err := eng.Insert("users", Record{"id": "u1", "name": "Sana"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Every DDL statement uses IF NOT EXISTS, so re-running the whole
	// schema against a populated engine is a no-op.
	if err := applySchema(eng.db); err != nil {
		t.Fatalf("schema re-application failed: %v", err)
	}
	if err := applySchema(eng.db); err != nil {
		t.Fatalf("third schema application failed: %v", err)
	}

	rows, err := eng.Select("users", nil, "")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Sana" {
		t.Errorf("existing rows disturbed by schema re-application: %v", rows)
	}
}

func TestInsert_PersistsSnapshotToKV(t *testing.T) {
	kv, eng := openTestEngine(t)

	err := eng.Insert("users", Record{"id": "u1", "name": "Sana", "email": "sana@example.com", "role": "Admin"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	snap, ok := kv.Get(kvstore.KeySnapshot)
	if !ok || snap == "" {
		t.Fatal("expected snapshot key to be written after Insert")
	}
	raw, err := base64.StdEncoding.DecodeString(snap)
	if err != nil {
		t.Fatalf("snapshot is not valid base64: %v", err)
	}
	// SQLite files start with a fixed 16-byte header string.
	if len(raw) < 16 || string(raw[:15]) != "SQLite format 3" {
		t.Error("snapshot does not hold a SQLite database image")
	}
}

func TestOpen_RestoresFromSnapshot(t *testing.T) {
	dataDir := t.TempDir()
	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}

	eng, err := Open(kv, dataDir, quietLogger())
	if err != nil {
		t.Fatalf("opening engine: %v", err)
	}
	if err := eng.Insert("users", Record{"id": "u1", "name": "Sana"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(kv, dataDir, quietLogger())
	if err != nil {
		t.Fatalf("reopening engine: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.Select("users", nil, "id = ?", "u1")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 user after restore, got %d", len(rows))
	}
	if rows[0]["name"] != "Sana" {
		t.Errorf("expected name Sana, got %v", rows[0]["name"])
	}
}

func TestOpen_CorruptSnapshotErrors(t *testing.T) {
	dataDir := t.TempDir()
	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}
	if err := kv.Set(kvstore.KeySnapshot, "!!! not base64 !!!"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err = Open(kv, dataDir, quietLogger())
	if !errors.Is(err, types.ErrSerialization) {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}

	// The stored snapshot must not be discarded.
	if snap, ok := kv.Get(kvstore.KeySnapshot); !ok || snap != "!!! not base64 !!!" {
		t.Error("corrupt snapshot was modified or removed")
	}
}

func TestOpen_NonDatabaseSnapshotErrors(t *testing.T) {
	dataDir := t.TempDir()
	kv, err := kvstore.Open(dataDir)
	if err != nil {
		t.Fatalf("opening key-value store: %v", err)
	}

	// Valid base64, but the decoded bytes are not a SQLite image.
	garbage := base64.StdEncoding.EncodeToString([]byte("definitely not a database file"))
	if err := kv.Set(kvstore.KeySnapshot, garbage); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err = Open(kv, dataDir, quietLogger())
	if !errors.Is(err, types.ErrSerialization) {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}
	if snap, ok := kv.Get(kvstore.KeySnapshot); !ok || snap != garbage {
		t.Error("unusable snapshot was modified or removed")
	}
}

func TestClose_Idempotent(t *testing.T) {
	_, eng := openTestEngine(t)

	if err := eng.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Errorf("second Close should not error, got %v", err)
	}
}

func TestClosedEngine_OperationsReturnUnavailable(t *testing.T) {
	_, eng := openTestEngine(t)
	eng.Close()

	if _, err := eng.Select("users", nil, ""); !errors.Is(err, types.ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable from Select, got %v", err)
	}
	if err := eng.Insert("users", Record{"id": "u1"}); !errors.Is(err, types.ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable from Insert, got %v", err)
	}
}
