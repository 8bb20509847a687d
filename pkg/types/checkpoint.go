package types

import "time"

// Checkpoint is an immutable point-in-time snapshot of the state
// document plus metadata. Created only by the checkpoint manager and
// deleted only by retention eviction.
type Checkpoint struct {
	ID            string            `yaml:"id" json:"id"`
	Created       time.Time         `yaml:"created" json:"created"`
	Trigger       string            `yaml:"trigger" json:"trigger"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	TaskID        string            `yaml:"task_id,omitempty" json:"task_id,omitempty"`
	Parent        string            `yaml:"parent,omitempty" json:"parent,omitempty"`
	StateHash     string            `yaml:"state_hash" json:"state_hash"`
	StateSnapshot *StateDocument    `yaml:"state_snapshot" json:"state_snapshot"`
	Context       CheckpointContext `yaml:"context" json:"context"`
}

// CheckpointContext is a denormalized summary of the snapshot, kept so
// listings and reports never need to deserialize full snapshots.
type CheckpointContext struct {
	Phase         string   `yaml:"phase" json:"phase"`
	PhaseProgress float64  `yaml:"phase_progress" json:"phase_progress"`
	ActiveTasks   []string `yaml:"active_tasks,omitempty" json:"active_tasks,omitempty"`
}

// CheckpointSummary is a manifest entry describing one checkpoint. File
// is the storage file name relative to the checkpoints directory.
type CheckpointSummary struct {
	ID      string    `yaml:"id" json:"id"`
	Created time.Time `yaml:"created" json:"created"`
	Trigger string    `yaml:"trigger" json:"trigger"`
	Task    string    `yaml:"task,omitempty" json:"task,omitempty"`
	File    string    `yaml:"file" json:"file"`
}

// Retention is the checkpoint retention policy. KeepLast drives the
// baseline count-based FIFO eviction; KeepMilestones and MaxAgeDays are
// carried in the manifest but do not affect the baseline rule.
type Retention struct {
	KeepLast       int  `yaml:"keep_last" json:"keep_last"`
	KeepMilestones bool `yaml:"keep_milestones" json:"keep_milestones"`
	MaxAgeDays     int  `yaml:"max_age_days" json:"max_age_days"`
}

// DefaultRetention returns the retention policy written into a fresh
// manifest.
func DefaultRetention() Retention {
	return Retention{
		KeepLast:       10,
		KeepMilestones: true,
		MaxAgeDays:     30,
	}
}

// Manifest is the index of all checkpoints for a project plus the
// active retention policy. It is the source of truth for which
// checkpoints exist; the checkpoint files hold the full snapshots.
type Manifest struct {
	Checkpoints []CheckpointSummary `yaml:"checkpoints" json:"checkpoints"`
	Latest      string              `yaml:"latest,omitempty" json:"latest,omitempty"`
	Retention   Retention           `yaml:"retention" json:"retention"`
}

// NewManifest returns an empty manifest with the default retention
// policy.
func NewManifest() *Manifest {
	return &Manifest{
		Checkpoints: []CheckpointSummary{},
		Retention:   DefaultRetention(),
	}
}

// Find returns the summary entry for the given checkpoint id, or nil.
func (m *Manifest) Find(id string) *CheckpointSummary {
	for i := range m.Checkpoints {
		if m.Checkpoints[i].ID == id {
			return &m.Checkpoints[i]
		}
	}
	return nil
}
