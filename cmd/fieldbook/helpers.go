// Shared helpers for fieldbook CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/atlaseng/fieldbook/internal/datasync"
	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/internal/kvstore"
	"github.com/atlaseng/fieldbook/internal/repo"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// app bundles the stores and services a command works with. One app is
// constructed per command invocation and passed explicitly; there is no
// ambient global store.
type app struct {
	kv   *kvstore.Store
	eng  *engine.Engine // nil when the engine could not be opened at all
	svc  *datasync.Service
	repo *repo.Repo // nil when eng is nil

	// engErr records why the engine is unavailable, for commands that
	// fundamentally require it.
	engErr error
}

// openApp resolves the data directory and opens both stores. A failed
// engine open degrades the app to key-value-only mode rather than aborting:
// listing and syncing from the key-value side must keep working.
func openApp() (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	kv, err := kvstore.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open key-value store: %w", err)
	}

	logger := log.New(os.Stderr, "[fieldbook] ", log.LstdFlags)

	a := &app{kv: kv}
	eng, err := engine.Open(kv, dataDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: engine unavailable, key-value-only mode: %v\n", err)
		a.engErr = err
	} else {
		a.eng = eng
		a.repo = repo.New(eng)
	}
	a.svc = datasync.New(kv, a.eng, logger)
	return a, nil
}

// close releases the engine handle.
func (a *app) close() {
	if a.eng != nil {
		a.eng.Close()
	}
}

// requireEngine returns the unavailability error for commands that cannot
// degrade.
func (a *app) requireEngine() error {
	if a.eng == nil {
		if a.engErr != nil {
			return fmt.Errorf("%w: %v", types.ErrEngineUnavailable, a.engErr)
		}
		return types.ErrEngineUnavailable
	}
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// reportFailures prints per-entity sync failures and returns a summary
// error when any occurred.
func reportFailures(failures []types.SyncError) error {
	if len(failures) == 0 {
		return nil
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", f.Entity, f.Err)
	}
	return fmt.Errorf("%d of 4 entity syncs failed", len(failures))
}
