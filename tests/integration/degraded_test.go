// Degraded-mode behavior: the engine falls back to an in-memory instance
// when its durable path is unusable, and the rest of the stack keeps serving
// from the key-value store.
package integration

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlaseng/fieldbook/internal/datasync"
	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/internal/kvstore"
)

func TestEngine_FallsBackToMemoryOnBadDataDir(t *testing.T) {
	kvDir := t.TempDir()
	kv, err := kvstore.Open(kvDir)
	require.NoError(t, err)

	// A regular file where the engine expects a directory makes the durable
	// path unusable.
	badDir := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(badDir, []byte("x"), 0o644))

	eng, err := engine.Open(kv, badDir, log.New(io.Discard, "", 0))
	require.NoError(t, err, "fallback must succeed where the durable open cannot")
	defer eng.Close()
	assert.False(t, eng.Durable())

	// The in-memory engine is fully queryable.
	require.NoError(t, eng.Insert("users", engine.Record{"id": "u1", "name": "Sana"}))
	rows, err := eng.Select("users", nil, "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// But nothing reaches the snapshot slot.
	_, ok := kv.Get(kvstore.KeySnapshot)
	assert.False(t, ok, "degraded engine must not write snapshots")
}

func TestSync_KVOnlyModeServesBaseData(t *testing.T) {
	kv, err := kvstore.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, kv.SetProjects(SampleProjects()))

	svc := datasync.New(kv, nil, log.New(io.Discard, "", 0))

	projects, err := svc.ProjectsWithAnalytics()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.Nil(t, p.Analytics, "no analytics without an engine")
	}

	assert.Empty(t, svc.ProjectReports())
	assert.Empty(t, svc.UserReports())
}
