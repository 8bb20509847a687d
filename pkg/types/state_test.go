package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase string
		want  bool
	}{
		{name: "planning", phase: PhasePlanning, want: true},
		{name: "implementation", phase: PhaseImplementation, want: true},
		{name: "review", phase: PhaseReview, want: true},
		{name: "complete", phase: PhaseComplete, want: true},
		{name: "unknown rejected", phase: "testing", want: false},
		{name: "empty rejected", phase: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPhase(tt.phase))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, ValidStatus(s), "status %q should be valid", s)
	}
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))
}

func TestTaskDone(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusVerified, true},
		{StatusBlocked, false},
		{StatusNeedsHuman, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			task := Task{ID: "a", Status: tt.status}
			assert.Equal(t, tt.want, task.Done())
		})
	}
}

func TestTaskSetStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("stamps timestamp on advance", func(t *testing.T) {
		task := Task{ID: "a", Status: StatusPending}

		require.NoError(t, task.SetStatus(StatusInProgress, now))
		require.NotNil(t, task.StartedAt)
		assert.True(t, task.StartedAt.Equal(now))

		later := now.Add(time.Hour)
		require.NoError(t, task.SetStatus(StatusCompleted, later))
		require.NotNil(t, task.CompletedAt)
		assert.True(t, task.CompletedAt.Equal(later))
		assert.True(t, task.StartedAt.Equal(now), "earlier stamp untouched")
	})

	t.Run("existing timestamp kept", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		task := Task{ID: "a", Status: StatusPending, StartedAt: &earlier}

		require.NoError(t, task.SetStatus(StatusInProgress, now))
		assert.True(t, task.StartedAt.Equal(earlier))
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		task := Task{ID: "a", Status: StatusPending}

		err := task.SetStatus("done", now)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Equal(t, StatusPending, task.Status)
	})
}

func TestSetPhase(t *testing.T) {
	doc := StateDocument{Phase: PhasePlanning}

	require.NoError(t, doc.SetPhase(PhaseImplementation))
	assert.Equal(t, PhaseImplementation, doc.Phase)

	err := doc.SetPhase("testing")
	assert.ErrorIs(t, err, ErrInvalidPhase)
	assert.Equal(t, PhaseImplementation, doc.Phase)
}

func TestActiveTaskIDs(t *testing.T) {
	doc := StateDocument{
		Tasks: []Task{
			{ID: "a", Status: StatusCompleted},
			{ID: "b", Status: StatusInProgress},
			{ID: "c", Status: StatusPending},
			{ID: "d", Status: StatusInProgress},
		},
	}
	assert.Equal(t, []string{"b", "d"}, doc.ActiveTaskIDs())

	empty := StateDocument{Tasks: []Task{{ID: "a", Status: StatusPending}}}
	assert.Nil(t, empty.ActiveTaskIDs())
}

func TestFindTask(t *testing.T) {
	doc := StateDocument{
		Tasks: []Task{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}},
	}

	got := doc.FindTask("b")
	assert.NotNil(t, got)
	assert.Equal(t, "second", got.Name)

	assert.Nil(t, doc.FindTask("missing"))

	// The returned pointer aliases the document so callers can mutate.
	got.Status = StatusInProgress
	assert.Equal(t, StatusInProgress, doc.Tasks[1].Status)
}

func TestCloneIsDeep(t *testing.T) {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := &StateDocument{
		Project: Project{
			ID:          "proj-1",
			Name:        "demo",
			Constraints: []string{"mobile-first"},
		},
		Phase: PhaseImplementation,
		Tasks: []Task{
			{
				ID:                 "a",
				Name:               "task a",
				Status:             StatusInProgress,
				Dependencies:       Dependencies{Hard: []string{"b"}},
				AcceptanceCriteria: []string{"compiles"},
				StartedAt:          &started,
			},
			{ID: "b", Name: "task b", Status: StatusPending},
		},
		Session:      Session{ID: "sess-1"},
		BlockedTasks: []string{"a"},
	}

	clone := doc.Clone()

	clone.Tasks[0].Dependencies.Hard[0] = "changed"
	clone.Tasks[0].AcceptanceCriteria[0] = "changed"
	*clone.Tasks[0].StartedAt = started.Add(time.Hour)
	clone.Project.Constraints[0] = "changed"
	clone.BlockedTasks[0] = "changed"
	clone.Tasks[1].Status = StatusCompleted

	assert.Equal(t, "b", doc.Tasks[0].Dependencies.Hard[0])
	assert.Equal(t, "compiles", doc.Tasks[0].AcceptanceCriteria[0])
	assert.True(t, doc.Tasks[0].StartedAt.Equal(started))
	assert.Equal(t, "mobile-first", doc.Project.Constraints[0])
	assert.Equal(t, "a", doc.BlockedTasks[0])
	assert.Equal(t, StatusPending, doc.Tasks[1].Status)
}

func TestCloneNilSlicesStayNil(t *testing.T) {
	doc := &StateDocument{Phase: PhasePlanning}
	clone := doc.Clone()
	assert.Nil(t, clone.Tasks)
	assert.Nil(t, clone.BlockedTasks)
	assert.Nil(t, clone.Project.Constraints)
}
