// Package validate runs schema, referential, and graph checks against
// a state document, and performs bounded auto-repair of mechanical
// defects.
package validate

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/cairn/internal/graph"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

// highContextUsage is the warning threshold for the session's context
// consumption ratio.
const highContextUsage = 0.8

// Result accumulates validation findings. Errors mean the document is
// unsafe to operate on further; warnings flag defects that do not
// block operation.
type Result struct {
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// Valid reports whether no errors were found.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// State validates a document without mutating it. Stages run in order:
// required top-level sections (absence skips all deeper stages, since
// the document cannot be safely traversed), project fields, phase
// enum, per-task and cross-task checks, graph acyclicity, and session
// fields. Checks within a stage accumulate independently; one invalid
// task does not stop checking of the others.
func State(doc *types.StateDocument) Result {
	var res Result

	checkRequired(doc, &res)
	if !res.Valid() {
		return res
	}

	checkProject(doc, &res)
	checkPhase(doc, &res)
	checkTasks(doc, &res)
	checkGraph(doc, &res)
	checkSession(doc, &res)
	return res
}

// checkRequired verifies the top-level sections are present. A decoded
// document reports a section as missing when it is indistinguishable
// from never having been set: a zero project or session, an empty
// phase, a nil task list.
func checkRequired(doc *types.StateDocument, res *Result) {
	if zeroProject(doc.Project) {
		res.errorf("Missing required field: project")
	}
	if doc.Phase == "" {
		res.errorf("Missing required field: phase")
	}
	if doc.Tasks == nil {
		res.errorf("Missing required field: tasks")
	}
	if doc.Session == (types.Session{}) {
		res.errorf("Missing required field: session")
	}
}

func zeroProject(p types.Project) bool {
	return p.ID == "" && p.Name == "" && p.Goal == "" &&
		p.Created.IsZero() && p.Constraints == nil
}

func checkProject(doc *types.StateDocument, res *Result) {
	if doc.Project.ID == "" {
		res.errorf("Project missing 'id'")
	}
	if doc.Project.Name == "" {
		res.errorf("Project missing 'name'")
	}
	if doc.Project.Goal == "" {
		res.warnf("Project missing 'goal' - recommended to add")
	}
	if doc.Project.Created.IsZero() {
		res.warnf("Project missing 'created' timestamp")
	}
}

func checkPhase(doc *types.StateDocument, res *Result) {
	if !types.ValidPhase(doc.Phase) {
		res.errorf("Invalid phase %q. Must be one of: %s",
			doc.Phase, strings.Join(types.Phases(), ", "))
	}
}

func checkTasks(doc *types.StateDocument, res *Result) {
	seen := make(map[string]bool, len(doc.Tasks))

	for i, task := range doc.Tasks {
		if task.ID == "" {
			res.errorf("Task at index %d missing 'id'", i)
			continue
		}
		if task.Name == "" {
			res.errorf("Task %s missing 'name'", task.ID)
		}
		if seen[task.ID] {
			res.errorf("Duplicate task ID: %s", task.ID)
		}
		seen[task.ID] = true

		if !types.ValidStatus(task.Status) {
			res.errorf("Task %s has invalid status %q", task.ID, task.Status)
		}

		switch task.Status {
		case types.StatusInProgress:
			if task.StartedAt == nil {
				res.warnf("Task %s is in_progress but missing 'started_at'", task.ID)
			}
		case types.StatusCompleted:
			if task.CompletedAt == nil {
				res.warnf("Task %s is completed but missing 'completed_at'", task.ID)
			}
		case types.StatusVerified:
			if task.VerifiedAt == nil {
				res.warnf("Task %s is verified but missing 'verified_at'", task.ID)
			}
		}

		if len(task.AcceptanceCriteria) == 0 {
			res.warnf("Task %s has no acceptance criteria", task.ID)
		}
	}

	// Cross-task referential checks run after the id set is complete.
	for _, task := range doc.Tasks {
		if task.ID == "" {
			continue
		}
		for _, dep := range task.Dependencies.Hard {
			if !seen[dep] {
				res.errorf("Task %s references non-existent dependency: %s", task.ID, dep)
			}
		}
		for _, dep := range task.Dependencies.Soft {
			if !seen[dep] {
				res.warnf("Task %s has soft dependency on non-existent task: %s", task.ID, dep)
			}
		}
	}
}

func checkGraph(doc *types.StateDocument, res *Result) {
	if _, cycle := graph.Check(doc.Tasks); len(cycle) > 0 {
		res.errorf("Circular dependency involving: %s", strings.Join(cycle, ", "))
	}
}

func checkSession(doc *types.StateDocument, res *Result) {
	if doc.Session.ID == "" {
		res.warnf("Session missing 'id'")
	}
	if doc.Session.LastUpdated.IsZero() {
		res.warnf("Session missing 'last_updated'")
	}
	if doc.Session.ContextUsage > highContextUsage {
		res.warnf("Context usage is high: %.0f%%", doc.Session.ContextUsage*100)
	}
}
