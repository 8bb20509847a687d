package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// mk builds a task with the given hard dependencies.
func mk(id string, hard ...string) types.Task {
	return types.Task{
		ID:           id,
		Name:         id,
		Status:       types.StatusPending,
		Dependencies: types.Dependencies{Hard: hard},
	}
}

func TestCheckAcyclic(t *testing.T) {
	tests := []struct {
		name  string
		tasks []types.Task
	}{
		{name: "empty graph", tasks: nil},
		{name: "single task", tasks: []types.Task{mk("a")}},
		{name: "isolated tasks", tasks: []types.Task{mk("a"), mk("b"), mk("c")}},
		{name: "chain", tasks: []types.Task{mk("a"), mk("b", "a"), mk("c", "b")}},
		{name: "diamond", tasks: []types.Task{
			mk("a"), mk("b", "a"), mk("c", "a"), mk("d", "b", "c"),
		}},
		{name: "isolated plus chain", tasks: []types.Task{
			mk("lone"), mk("a"), mk("b", "a"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, cycle := Check(tt.tasks)
			assert.Empty(t, cycle)
			assert.Len(t, order, len(tt.tasks))
		})
	}
}

func TestCheckOrderRespectsDependencies(t *testing.T) {
	tasks := []types.Task{mk("c", "b"), mk("b", "a"), mk("a")}

	order, cycle := Check(tasks)
	assert.Empty(t, cycle)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCheckCycles(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []types.Task
		wantCycle []string
	}{
		{
			name:      "two-node cycle",
			tasks:     []types.Task{mk("a", "b"), mk("b", "a")},
			wantCycle: []string{"a", "b"},
		},
		{
			name:      "self dependency",
			tasks:     []types.Task{mk("a", "a"), mk("b")},
			wantCycle: []string{"a"},
		},
		{
			name: "three-node cycle",
			tasks: []types.Task{
				mk("a", "c"), mk("b", "a"), mk("c", "b"),
			},
			wantCycle: []string{"a", "b", "c"},
		},
		{
			// x and y form the cycle; z sits downstream of it and is
			// equally unorderable. a, b, and free still order.
			name: "cycle set is exactly the unorderable subgraph",
			tasks: []types.Task{
				mk("a"), mk("b", "a"),
				mk("x", "y"), mk("y", "x"), mk("z", "x"),
				mk("free"),
			},
			wantCycle: []string{"x", "y", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, cycle := Check(tt.tasks)
			assert.Equal(t, tt.wantCycle, cycle)
			assert.Len(t, order, len(tt.tasks)-len(tt.wantCycle))
		})
	}
}

func TestCheckIgnoresDanglingDependencies(t *testing.T) {
	// A hard dependency on a task that does not exist is a referential
	// defect, not a cycle; the checker skips the edge.
	tasks := []types.Task{mk("a", "ghost"), mk("b", "a")}

	order, cycle := Check(tasks)
	assert.Empty(t, cycle)
	assert.Equal(t, []string{"a", "b"}, order)
}
