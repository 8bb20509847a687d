// Package state provides typed load/save of the state document and
// checkpoint manifest over a raw store, plus the integrity hasher.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/mesh-intelligence/cairn/internal/store"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Project directory layout, relative to the project root.
const (
	stateBase      = "state"
	CheckpointsDir = "checkpoints"
	manifestBase   = "checkpoints/manifest"
	BackupsDir     = "backups"
)

// Files is the typed access layer for the documents in one project
// directory. All documents share a single store and codec; the codec
// is chosen once at startup from configuration.
type Files struct {
	store store.Store
	codec store.Codec
}

// NewFiles returns a Files over the given store and codec.
func NewFiles(s store.Store, c store.Codec) *Files {
	return &Files{store: s, codec: c}
}

// Codec returns the codec used for every document in the project.
func (f *Files) Codec() store.Codec { return f.codec }

// StatePath returns the state document path relative to the project
// root, e.g. "state.yaml".
func (f *Files) StatePath() string {
	return stateBase + "." + f.codec.Ext()
}

// ManifestPath returns the manifest path relative to the project root.
func (f *Files) ManifestPath() string {
	return manifestBase + "." + f.codec.Ext()
}

// CheckpointFile returns the storage file name for a checkpoint id,
// relative to the checkpoints directory.
func (f *Files) CheckpointFile(id string) string {
	return id + "." + f.codec.Ext()
}

// BackupPath returns the pre-restore backup path for the given time,
// relative to the project root.
func (f *Files) BackupPath(now time.Time) string {
	return fmt.Sprintf("%s/state_before_restore_%s.%s",
		BackupsDir, now.Format("20060102_150405"), f.codec.Ext())
}

// StateExists reports whether the state document is present.
func (f *Files) StateExists() bool {
	return f.store.Exists(f.StatePath())
}

// LoadState reads and decodes the state document.
// Returns types.ErrStateNotFound if it does not exist.
func (f *Files) LoadState() (*types.StateDocument, error) {
	data, err := f.store.Read(f.StatePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrStateNotFound
		}
		return nil, fmt.Errorf("read state document: %w", err)
	}
	var doc types.StateDocument
	if err := f.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}
	return &doc, nil
}

// SaveState encodes and atomically persists the state document.
func (f *Files) SaveState(doc *types.StateDocument) error {
	data, err := f.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state document: %w", err)
	}
	if err := f.store.Write(f.StatePath(), data); err != nil {
		return fmt.Errorf("write state document: %w", err)
	}
	return nil
}

// LoadManifest reads and decodes the checkpoint manifest.
// Returns types.ErrManifestNotFound if it does not exist.
func (f *Files) LoadManifest() (*types.Manifest, error) {
	data, err := f.store.Read(f.ManifestPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrManifestNotFound
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m types.Manifest
	if err := f.codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// SaveManifest encodes and atomically persists the manifest.
func (f *Files) SaveManifest(m *types.Manifest) error {
	data, err := f.codec.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := f.store.Write(f.ManifestPath(), data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadCheckpoint reads and decodes a checkpoint by its storage file
// name. Returns types.ErrCheckpointNotFound if the file referenced by
// the manifest is missing.
func (f *Files) LoadCheckpoint(file string) (*types.Checkpoint, error) {
	data, err := f.store.Read(CheckpointsDir + "/" + file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s missing", types.ErrCheckpointNotFound, file)
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	var cp types.Checkpoint
	if err := f.codec.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	return &cp, nil
}

// SaveCheckpoint encodes and persists a checkpoint under its storage
// file name.
func (f *Files) SaveCheckpoint(file string, cp *types.Checkpoint) error {
	data, err := f.codec.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := f.store.Write(CheckpointsDir+"/"+file, data); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// RemoveCheckpoint deletes a checkpoint's storage file. Missing files
// are ignored so retention eviction stays idempotent.
func (f *Files) RemoveCheckpoint(file string) error {
	return f.store.Remove(CheckpointsDir + "/" + file)
}

// BackupState copies the live state document, as raw bytes, to the
// pre-restore backup location. Returns types.ErrStateNotFound when
// there is nothing to back up.
func (f *Files) BackupState(now time.Time) error {
	data, err := f.store.Read(f.StatePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ErrStateNotFound
		}
		return fmt.Errorf("read state document: %w", err)
	}
	if err := f.store.Write(f.BackupPath(now), data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
