package types

import "time"

// Project phases. A project moves through these phases in order.
const (
	PhasePlanning       = "planning"
	PhaseImplementation = "implementation"
	PhaseReview         = "review"
	PhaseComplete       = "complete"
)

// validPhases is the set of recognized phase values.
var validPhases = map[string]bool{
	PhasePlanning:       true,
	PhaseImplementation: true,
	PhaseReview:         true,
	PhaseComplete:       true,
}

// Phases returns the recognized phase values in lifecycle order.
func Phases() []string {
	return []string{PhasePlanning, PhaseImplementation, PhaseReview, PhaseComplete}
}

// ValidPhase reports whether p is a recognized phase value.
func ValidPhase(p string) bool {
	return validPhases[p]
}

// Task statuses. A task progresses through these during its lifecycle.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
	StatusBlocked    = "blocked"
	StatusNeedsHuman = "needs_human"
)

// validStatuses is the set of recognized task status values.
var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusVerified:   true,
	StatusBlocked:    true,
	StatusNeedsHuman: true,
}

// Statuses returns the recognized task status values.
func Statuses() []string {
	return []string{
		StatusPending, StatusInProgress, StatusCompleted,
		StatusVerified, StatusBlocked, StatusNeedsHuman,
	}
}

// ValidStatus reports whether s is a recognized task status value.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Project holds project identity and goal metadata. Immutable after
// creation except by explicit edits outside the core.
type Project struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Goal        string    `yaml:"goal,omitempty" json:"goal,omitempty"`
	Created     time.Time `yaml:"created,omitempty" json:"created,omitzero"`
	Constraints []string  `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// Dependencies declares a task's relationships to other tasks by id.
// Hard dependencies must be acyclic and resolve to existing tasks;
// soft dependencies are advisory only.
type Dependencies struct {
	Hard []string `yaml:"hard,omitempty" json:"hard,omitempty"`
	Soft []string `yaml:"soft,omitempty" json:"soft,omitempty"`
}

// Task is a single work item in the project plan. Lifecycle timestamps
// are populated as the status advances and are nil until then.
type Task struct {
	ID                 string       `yaml:"id" json:"id"`
	Name               string       `yaml:"name" json:"name"`
	Status             string       `yaml:"status" json:"status"`
	Dependencies       Dependencies `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	AcceptanceCriteria []string     `yaml:"acceptance_criteria,omitempty" json:"acceptance_criteria,omitempty"`
	StartedAt          *time.Time   `yaml:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt        *time.Time   `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	VerifiedAt         *time.Time   `yaml:"verified_at,omitempty" json:"verified_at,omitempty"`
}

// Done reports whether the task reached a terminal successful status.
func (t *Task) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusVerified
}

// SetStatus sets the task status and populates the lifecycle timestamp
// the new status implies, if it is not already set. Timestamps only
// ever accrue; moving a task backward leaves earlier stamps in place.
// Returns ErrInvalidStatus if the status is not recognized.
func (t *Task) SetStatus(status string, now time.Time) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	switch status {
	case StatusInProgress:
		if t.StartedAt == nil {
			t.StartedAt = &now
		}
	case StatusCompleted:
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	case StatusVerified:
		if t.VerifiedAt == nil {
			t.VerifiedAt = &now
		}
	}
	return nil
}

// Session records metadata about the active working session.
// ContextUsage is the consumption ratio of the bounded context budget,
// in [0, 1].
type Session struct {
	ID           string    `yaml:"id" json:"id"`
	Started      time.Time `yaml:"started,omitempty" json:"started,omitzero"`
	LastUpdated  time.Time `yaml:"last_updated,omitempty" json:"last_updated,omitzero"`
	ContextUsage float64   `yaml:"context_usage" json:"context_usage"`
	Compactions  int       `yaml:"compactions" json:"compactions"`
	Notes        string    `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// StateDocument is the aggregate root: the single structured record of a
// project's tasks, phase, and session. One document exists per project
// directory; it is mutated in place and persisted atomically after each
// mutation.
type StateDocument struct {
	Project        Project    `yaml:"project" json:"project"`
	Phase          string     `yaml:"phase" json:"phase"`
	PhaseStarted   *time.Time `yaml:"phase_started,omitempty" json:"phase_started,omitempty"`
	PhaseProgress  float64    `yaml:"phase_progress" json:"phase_progress"`
	Tasks          []Task     `yaml:"tasks" json:"tasks"`
	Session        Session    `yaml:"session" json:"session"`
	BlockedTasks   []string   `yaml:"blocked_tasks,omitempty" json:"blocked_tasks,omitempty"`
	EscalatedTasks []string   `yaml:"escalated_tasks,omitempty" json:"escalated_tasks,omitempty"`
}

// SetPhase sets the project phase.
// Returns ErrInvalidPhase if the phase is not recognized.
func (d *StateDocument) SetPhase(phase string) error {
	if !validPhases[phase] {
		return ErrInvalidPhase
	}
	d.Phase = phase
	return nil
}

// FindTask returns the task with the given id, or nil if absent.
func (d *StateDocument) FindTask(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// TaskIDs returns the ids of all tasks in document order.
func (d *StateDocument) TaskIDs() []string {
	ids := make([]string, len(d.Tasks))
	for i, t := range d.Tasks {
		ids[i] = t.ID
	}
	return ids
}

// ActiveTaskIDs returns the ids of tasks currently in progress, in
// document order. Recorded in a checkpoint's denormalized context.
func (d *StateDocument) ActiveTaskIDs() []string {
	var ids []string
	for _, t := range d.Tasks {
		if t.Status == StatusInProgress {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the document. Checkpoint snapshots embed
// clones so later mutations of the live document cannot alias into them.
func (d *StateDocument) Clone() *StateDocument {
	out := *d
	out.Project.Constraints = cloneStrings(d.Project.Constraints)
	out.PhaseStarted = cloneTime(d.PhaseStarted)
	out.BlockedTasks = cloneStrings(d.BlockedTasks)
	out.EscalatedTasks = cloneStrings(d.EscalatedTasks)
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		for i, t := range d.Tasks {
			c := t
			c.Dependencies.Hard = cloneStrings(t.Dependencies.Hard)
			c.Dependencies.Soft = cloneStrings(t.Dependencies.Soft)
			c.AcceptanceCriteria = cloneStrings(t.AcceptanceCriteria)
			c.StartedAt = cloneTime(t.StartedAt)
			c.CompletedAt = cloneTime(t.CompletedAt)
			c.VerifiedAt = cloneTime(t.VerifiedAt)
			out.Tasks[i] = c
		}
	}
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
