package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

func sampleDoc() *types.StateDocument {
	created := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	return &types.StateDocument{
		Project: types.Project{ID: "proj-1", Name: "demo", Created: created},
		Phase:   types.PhaseImplementation,
		Tasks: []types.Task{
			{ID: "a", Name: "first", Status: types.StatusPending},
			{ID: "b", Name: "second", Status: types.StatusPending,
				Dependencies: types.Dependencies{Hard: []string{"a"}}},
		},
		Session: types.Session{ID: "sess-1", ContextUsage: 0.5},
	}
}

func TestHashFixedLength(t *testing.T) {
	h, err := Hash(sampleDoc())
	require.NoError(t, err)
	assert.Len(t, h, 16)
}

func TestHashDeterministic(t *testing.T) {
	doc := sampleDoc()

	h1, err := Hash(doc)
	require.NoError(t, err)
	h2, err := Hash(doc)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestHashStableAcrossSerialization(t *testing.T) {
	doc := sampleDoc()
	want, err := Hash(doc)
	require.NoError(t, err)

	// A document decoded back from YAML, whatever field order the
	// encoder chose, must fingerprint identically.
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)
	var decoded types.StateDocument
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	got, err := Hash(&decoded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHashSensitiveToChanges(t *testing.T) {
	base, err := Hash(sampleDoc())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*types.StateDocument)
	}{
		{name: "phase change", mutate: func(d *types.StateDocument) {
			d.Phase = types.PhaseReview
		}},
		{name: "task status change", mutate: func(d *types.StateDocument) {
			d.Tasks[0].Status = types.StatusCompleted
		}},
		{name: "progress change", mutate: func(d *types.StateDocument) {
			d.PhaseProgress = 0.5
		}},
		{name: "dependency change", mutate: func(d *types.StateDocument) {
			d.Tasks[1].Dependencies.Hard = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			tt.mutate(doc)
			got, err := Hash(doc)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}
