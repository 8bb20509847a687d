// Package graph checks the hard-dependency relation of a task set for
// acyclicity using an in-degree topological sort.
package graph

import (
	"sort"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Check topologically sorts the hard-dependency graph of the given
// tasks (edge: dependency -> dependent). On success it returns a valid
// ordering of every task id and a nil cycle set. Otherwise it returns
// the partial ordering plus the exact set of task ids that could not
// be ordered, sorted for deterministic diagnostics.
//
// Edges whose dependency id does not name a task in the set are
// skipped; dangling references are a referential defect reported by
// the validator, not a cycle.
func Check(tasks []types.Task) (order []string, cycle []string) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	// dependents[d] lists tasks unlocked when d is ordered; inDegree
	// counts unmet hard dependencies per task. A self-dependency is a
	// normal edge and yields a 1-node cycle.
	dependents := make(map[string][]string, len(tasks))
	inDegree := make(map[string]int, len(tasks))
	for _, t := range tasks {
		for _, dep := range t.Dependencies.Hard {
			if !known[dep] {
				continue
			}
			dependents[dep] = append(dependents[dep], t.ID)
			inDegree[t.ID]++
		}
	}

	queue := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	order = make([]string, 0, len(tasks))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, next := range dependents[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) == len(known) {
		return order, nil
	}

	ordered := make(map[string]bool, len(order))
	for _, id := range order {
		ordered[id] = true
	}
	for id := range known {
		if !ordered[id] {
			cycle = append(cycle, id)
		}
	}
	sort.Strings(cycle)
	return order, cycle
}
