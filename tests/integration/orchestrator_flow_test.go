// Integration tests exercising the full project lifecycle against a
// real filesystem: scaffold, mutate, validate, checkpoint, restore.
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cairn/internal/checkpoint"
	"github.com/mesh-intelligence/cairn/internal/report"
	"github.com/mesh-intelligence/cairn/internal/state"
	"github.com/mesh-intelligence/cairn/internal/store"
	"github.com/mesh-intelligence/cairn/internal/validate"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

var start = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

func tick(from time.Time) func() time.Time {
	now := from
	return func() time.Time {
		current := now
		now = now.Add(time.Second)
		return current
	}
}

func scaffold(t *testing.T, dir string, codecName string) *state.Files {
	t.Helper()
	codec, err := store.ForEncoding(codecName)
	require.NoError(t, err)
	files := state.NewFiles(store.NewFS(dir), codec)

	doc := &types.StateDocument{
		Project: types.Project{
			ID:      "proj-integration",
			Name:    "integration",
			Goal:    "exercise the full lifecycle",
			Created: start,
		},
		Phase: types.PhasePlanning,
		Tasks: []types.Task{},
		Session: types.Session{
			ID:          "sess-integration",
			Started:     start,
			LastUpdated: start,
		},
	}
	require.NoError(t, files.SaveState(doc))
	return files
}

func TestFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	files := scaffold(t, dir, store.EncodingYAML)

	// The fresh document validates cleanly.
	doc, err := files.LoadState()
	require.NoError(t, err)
	res := validate.State(doc)
	assert.True(t, res.Valid())

	// Plan two tasks and move into implementation.
	startedAt := start.Add(time.Minute)
	doc.Phase = types.PhaseImplementation
	doc.PhaseProgress = 0.1
	doc.Tasks = []types.Task{
		{
			ID: "auth", Name: "Implement auth", Status: types.StatusInProgress,
			StartedAt:          &startedAt,
			AcceptanceCriteria: []string{"login works"},
		},
		{
			ID: "ui", Name: "Build UI", Status: types.StatusPending,
			Dependencies:       types.Dependencies{Hard: []string{"auth"}},
			AcceptanceCriteria: []string{"renders"},
		},
	}
	require.NoError(t, files.SaveState(doc))

	// Checkpoint the implementation state.
	mgr := checkpoint.NewManager(files, tick(start.Add(time.Hour)))
	cp, err := mgr.Create(checkpoint.CreateOptions{Trigger: "phase_start", TaskID: "auth"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "checkpoints", cp.ID+".yaml"))
	assert.FileExists(t, filepath.Join(dir, "checkpoints", "manifest.yaml"))

	// Finish a task but forget the timestamp; validate flags it and
	// repair fixes it.
	doc, err = files.LoadState()
	require.NoError(t, err)
	doc.Tasks[0].Status = types.StatusCompleted
	require.NoError(t, files.SaveState(doc))

	doc, err = files.LoadState()
	require.NoError(t, err)
	res = validate.State(doc)
	assert.True(t, res.Valid())
	assert.Contains(t, res.Warnings, "Task auth is completed but missing 'completed_at'")

	changes := validate.Repair(doc, start.Add(2*time.Hour))
	assert.Contains(t, changes, "Set completed_at for auth")
	require.NoError(t, files.SaveState(doc))

	// Restore rolls back to the checkpointed state and leaves a backup.
	result, err := mgr.Restore("", true)
	require.NoError(t, err)
	assert.Equal(t, cp.ID, result.RestoredFrom)
	assert.Empty(t, result.Warnings)

	restored, err := files.LoadState()
	require.NoError(t, err)
	assert.Equal(t, types.StatusInProgress, restored.Tasks[0].Status)
	assert.Equal(t, "Restored from checkpoint "+cp.ID, restored.Session.Notes)

	backups, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, backups[0].Name(), "state_before_restore_")

	// The restored document still validates and reports sensibly.
	res = validate.State(restored)
	assert.True(t, res.Valid())
	r := report.Build(restored, start.Add(3*time.Hour))
	assert.Equal(t, 2, r.Progress.Total)
	assert.Equal(t, 1, r.Progress.InProgress)
}

func TestLifecycleWithJSONEncoding(t *testing.T) {
	dir := t.TempDir()
	files := scaffold(t, dir, store.EncodingJSON)

	assert.FileExists(t, filepath.Join(dir, "state.json"))

	mgr := checkpoint.NewManager(files, tick(start))
	cp, err := mgr.Create(checkpoint.CreateOptions{Trigger: "manual"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "checkpoints", cp.ID+".json"))
	assert.FileExists(t, filepath.Join(dir, "checkpoints", "manifest.json"))

	_, err = mgr.Restore(cp.ID, false)
	require.NoError(t, err)

	doc, err := files.LoadState()
	require.NoError(t, err)
	assert.Equal(t, "proj-integration", doc.Project.ID)
}

func TestRetentionAcrossProcesses(t *testing.T) {
	// A manager created fresh for every call, as the CLI does, still
	// enforces retention from the persisted manifest.
	dir := t.TempDir()
	files := scaffold(t, dir, store.EncodingYAML)

	clock := tick(start)
	var ids []string
	for i := 0; i < 4; i++ {
		mgr := checkpoint.NewManager(files, clock)
		mgr.SetRetention(types.Retention{KeepLast: 2, KeepMilestones: true, MaxAgeDays: 30})
		cp, err := mgr.Create(checkpoint.CreateOptions{Trigger: "loop"})
		require.NoError(t, err)
		ids = append(ids, cp.ID)
	}

	summaries, err := checkpoint.NewManager(files, clock).List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, ids[2], summaries[0].ID)
	assert.Equal(t, ids[3], summaries[1].ID)

	entries, err := os.ReadDir(filepath.Join(dir, "checkpoints"))
	require.NoError(t, err)
	// Two checkpoint files plus the manifest.
	assert.Len(t, entries, 3)
}

func TestValidateCatchesCycleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	files := scaffold(t, dir, store.EncodingYAML)

	doc, err := files.LoadState()
	require.NoError(t, err)
	doc.Tasks = []types.Task{
		{ID: "a", Name: "A", Status: types.StatusPending,
			Dependencies:       types.Dependencies{Hard: []string{"b"}},
			AcceptanceCriteria: []string{"done"}},
		{ID: "b", Name: "B", Status: types.StatusPending,
			Dependencies:       types.Dependencies{Hard: []string{"a"}},
			AcceptanceCriteria: []string{"done"}},
	}
	require.NoError(t, files.SaveState(doc))

	loaded, err := files.LoadState()
	require.NoError(t, err)
	res := validate.State(loaded)

	assert.False(t, res.Valid())
	assert.Contains(t, res.Errors, "Circular dependency involving: a, b")
}
