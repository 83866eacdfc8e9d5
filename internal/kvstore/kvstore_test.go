// Tests for the persisted key-value store.
package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpen_MissingFileYieldsEmptyStore(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected empty store, got keys %v", keys)
	}
}

func TestOpen_CreatesDataDir(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		t.Error("data directory not created")
	}
}

func TestSetGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.Set("alpha", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok := s.Get("alpha")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if v != "one" {
		t.Errorf("expected %q, got %q", "one", v)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing key to report absent")
	}
}

func TestSet_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set("alpha", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("beta", "two"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if v, _ := reopened.Get("alpha"); v != "one" {
		t.Errorf("expected alpha=one after reopen, got %q", v)
	}
	if v, _ := reopened.Get("beta"); v != "two" {
		t.Errorf("expected beta=two after reopen, got %q", v)
	}
}

func TestSet_FileIsValidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set("alpha", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(tmpDir, storeFileName))
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if data["alpha"] != "one" {
		t.Errorf("expected alpha=one in file, got %q", data["alpha"])
	}
}

func TestDelete(t *testing.T) {
	tmpDir := t.TempDir()

	s, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set("alpha", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := s.Delete("alpha"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get("alpha"); ok {
		t.Error("expected key to be gone after Delete")
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("alpha"); err != nil {
		t.Errorf("second Delete should not error, got %v", err)
	}

	// Deletion survives a reopen.
	reopened, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, ok := reopened.Get("alpha"); ok {
		t.Error("expected key to stay gone after reopen")
	}
}

func TestKeys_Sorted(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for _, k := range []string{"zebra", "alpha", "mango"} {
		if err := s.Set(k, "v"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	want := []string{"alpha", "mango", "zebra"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestOpen_CorruptFileErrors(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, storeFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, err := Open(tmpDir); err == nil {
		t.Error("expected error opening corrupt store file")
	}
}
