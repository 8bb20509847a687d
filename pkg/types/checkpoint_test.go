package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewManifest(t *testing.T) {
	m := NewManifest()

	assert.NotNil(t, m.Checkpoints)
	assert.Empty(t, m.Checkpoints)
	assert.Empty(t, m.Latest)
	assert.Equal(t, Retention{KeepLast: 10, KeepMilestones: true, MaxAgeDays: 30}, m.Retention)
}

func TestManifestFind(t *testing.T) {
	m := &Manifest{
		Checkpoints: []CheckpointSummary{
			{ID: "cp_1", File: "cp_1.yaml"},
			{ID: "cp_2", File: "cp_2.yaml"},
		},
	}

	got := m.Find("cp_2")
	assert.NotNil(t, got)
	assert.Equal(t, "cp_2.yaml", got.File)

	assert.Nil(t, m.Find("cp_3"))
	assert.Nil(t, m.Find(""))
}
