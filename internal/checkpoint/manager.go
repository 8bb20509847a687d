// Package checkpoint creates, lists, and restores point-in-time
// snapshots of the state document, governed by a retention policy.
package checkpoint

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/cairn/internal/state"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Manager runs the checkpoint lifecycle against one project directory.
// It never judges document content; validation is a separate concern.
// The clock is injected so ids and timestamps are deterministic under
// test.
type Manager struct {
	files     *state.Files
	clock     func() time.Time
	retention types.Retention
}

// NewManager returns a Manager over the given files. A nil clock
// defaults to time.Now.
func NewManager(files *state.Files, clock func() time.Time) *Manager {
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		files:     files,
		clock:     clock,
		retention: types.DefaultRetention(),
	}
}

// SetRetention sets the policy written into a freshly created
// manifest. An existing manifest keeps its own policy.
func (m *Manager) SetRetention(r types.Retention) {
	m.retention = r
}

// CreateOptions carries the caller-supplied checkpoint metadata.
type CreateOptions struct {
	Trigger     string
	Description string
	TaskID      string
}

// Create snapshots the current state document into a new checkpoint.
// It loads the live document (failing with types.ErrStateNotFound
// before anything is written), fingerprints it, chains the checkpoint
// to the manifest's previous latest via the parent id, persists the
// checkpoint file, appends a manifest entry, updates latest, enforces
// retention, and persists the manifest.
func (m *Manager) Create(opts CreateOptions) (*types.Checkpoint, error) {
	doc, err := m.files.LoadState()
	if err != nil {
		return nil, err
	}

	hash, err := state.Hash(doc)
	if err != nil {
		return nil, fmt.Errorf("fingerprint state: %w", err)
	}

	manifest, err := m.files.LoadManifest()
	if err != nil {
		if !errors.Is(err, types.ErrManifestNotFound) {
			return nil, err
		}
		manifest = types.NewManifest()
		manifest.Retention = m.retention
	}

	now := m.clock()
	description := opts.Description
	if description == "" {
		description = "Checkpoint triggered by " + opts.Trigger
	}

	cp := &types.Checkpoint{
		ID:            m.nextID(manifest, now),
		Created:       now,
		Trigger:       opts.Trigger,
		Description:   description,
		TaskID:        opts.TaskID,
		Parent:        manifest.Latest,
		StateHash:     hash,
		StateSnapshot: doc.Clone(),
		Context: types.CheckpointContext{
			Phase:         doc.Phase,
			PhaseProgress: doc.PhaseProgress,
			ActiveTasks:   doc.ActiveTaskIDs(),
		},
	}

	file := m.files.CheckpointFile(cp.ID)
	if err := m.files.SaveCheckpoint(file, cp); err != nil {
		return nil, err
	}

	manifest.Checkpoints = append(manifest.Checkpoints, types.CheckpointSummary{
		ID:      cp.ID,
		Created: cp.Created,
		Trigger: cp.Trigger,
		Task:    cp.TaskID,
		File:    file,
	})
	manifest.Latest = cp.ID

	if err := m.enforceRetention(manifest); err != nil {
		return nil, err
	}
	if err := m.files.SaveManifest(manifest); err != nil {
		return nil, err
	}
	return cp, nil
}

// nextID derives a checkpoint id from the clock. Ids sort lexically by
// creation order; when two checkpoints land in the same second the
// later ones get a numeric suffix that preserves the ordering.
func (m *Manager) nextID(manifest *types.Manifest, now time.Time) string {
	base := "cp_" + now.Format("20060102_150405")
	id := base
	for n := 2; manifest.Find(id) != nil; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

// enforceRetention applies the baseline count-based FIFO rule: when
// more than keep_last entries are retained, the oldest beyond that
// count lose their manifest entries and backing files. The milestone
// and age fields of the policy do not affect this rule.
func (m *Manager) enforceRetention(manifest *types.Manifest) error {
	keep := manifest.Retention.KeepLast
	if keep <= 0 || len(manifest.Checkpoints) <= keep {
		return nil
	}

	evicted := manifest.Checkpoints[:len(manifest.Checkpoints)-keep]
	manifest.Checkpoints = manifest.Checkpoints[len(manifest.Checkpoints)-keep:]

	for _, cp := range evicted {
		if err := m.files.RemoveCheckpoint(cp.File); err != nil {
			return fmt.Errorf("evict checkpoint %s: %w", cp.ID, err)
		}
	}
	return nil
}

// List returns the manifest's checkpoint summaries in insertion order
// without touching checkpoint storage. A project with no manifest has
// an empty list, not an error.
func (m *Manager) List() ([]types.CheckpointSummary, error) {
	manifest, err := m.files.LoadManifest()
	if err != nil {
		if errors.Is(err, types.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return manifest.Checkpoints, nil
}

// RestoreResult summarizes a completed restore for caller display.
type RestoreResult struct {
	RestoredFrom string    `json:"restored_from" yaml:"restored_from"`
	Created      time.Time `json:"checkpoint_created" yaml:"checkpoint_created"`
	Phase        string    `json:"phase" yaml:"phase"`
	Progress     float64   `json:"progress" yaml:"progress"`

	// Warnings carries non-fatal findings, such as a fingerprint
	// mismatch on the stored snapshot.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Restore overwrites the live state document with a checkpoint's
// snapshot. The target is an explicit id, or the manifest's latest
// when latest is set. The stored fingerprint is recomputed and
// compared; a mismatch is surfaced as a warning, not an abort, since a
// cosmetic re-serialization upstream must not brick a restore. The
// live document is first copied to a timestamped backup, best-effort.
// The restored document's session is stamped with a fresh last_updated
// and a note naming the checkpoint.
func (m *Manager) Restore(id string, latest bool) (*RestoreResult, error) {
	manifest, err := m.files.LoadManifest()
	if err != nil {
		if errors.Is(err, types.ErrManifestNotFound) {
			return nil, fmt.Errorf("%w: no checkpoints found", types.ErrCheckpointNotFound)
		}
		return nil, err
	}

	if latest {
		id = manifest.Latest
		if id == "" {
			return nil, fmt.Errorf("%w: no latest checkpoint available", types.ErrCheckpointNotFound)
		}
	}
	if id == "" {
		return nil, types.ErrNoCheckpointTarget
	}

	entry := manifest.Find(id)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrCheckpointNotFound, id)
	}

	cp, err := m.files.LoadCheckpoint(entry.File)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{
		RestoredFrom: cp.ID,
		Created:      cp.Created,
	}

	actual, err := state.Hash(cp.StateSnapshot)
	if err != nil {
		return nil, fmt.Errorf("fingerprint snapshot: %w", err)
	}
	if cp.StateHash != "" && actual != cp.StateHash {
		result.Warnings = append(result.Warnings,
			"Checkpoint hash mismatch. Data may be corrupted.")
	}

	now := m.clock()

	// Best-effort safety net; a failed backup never blocks the restore.
	if m.files.StateExists() {
		if err := m.files.BackupState(now); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not back up current state: %v", err))
		}
	}

	restored := cp.StateSnapshot.Clone()
	restored.Session.LastUpdated = now
	restored.Session.Notes = "Restored from checkpoint " + cp.ID
	if err := m.files.SaveState(restored); err != nil {
		return nil, err
	}

	result.Phase = restored.Phase
	result.Progress = restored.PhaseProgress
	return result, nil
}
