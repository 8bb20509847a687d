// Package report derives progress metrics from a state document and
// renders them as markdown or plain text. It is a read-only consumer
// of the document and assumes nothing about checkpoints.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Progress holds per-status task counts. Done counts completed plus
// verified tasks; Percentage is Done over Total.
type Progress struct {
	Total      int     `json:"total" yaml:"total"`
	Pending    int     `json:"pending" yaml:"pending"`
	InProgress int     `json:"in_progress" yaml:"in_progress"`
	Completed  int     `json:"completed" yaml:"completed"`
	Verified   int     `json:"verified" yaml:"verified"`
	Blocked    int     `json:"blocked" yaml:"blocked"`
	NeedsHuman int     `json:"needs_human" yaml:"needs_human"`
	Done       int     `json:"done" yaml:"done"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Calculate tallies task statuses into a Progress.
func Calculate(tasks []types.Task) Progress {
	var p Progress
	p.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case types.StatusPending:
			p.Pending++
		case types.StatusInProgress:
			p.InProgress++
		case types.StatusCompleted:
			p.Completed++
		case types.StatusVerified:
			p.Verified++
		case types.StatusBlocked:
			p.Blocked++
		case types.StatusNeedsHuman:
			p.NeedsHuman++
		}
	}
	p.Done = p.Completed + p.Verified
	if p.Total > 0 {
		p.Percentage = float64(p.Done) / float64(p.Total) * 100
	}
	return p
}

// Timeline returns the finished tasks ordered by completion time.
// Tasks without a completion stamp sort first.
func Timeline(tasks []types.Task) []types.Task {
	var done []types.Task
	for _, t := range tasks {
		if t.Done() {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return completedAt(done[i]).Before(completedAt(done[j]))
	})
	return done
}

func completedAt(t types.Task) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return time.Time{}
}

// Blockers returns the tasks stuck in blocked or needs_human status.
func Blockers(tasks []types.Task) []types.Task {
	var blocked []types.Task
	for _, t := range tasks {
		if t.Status == types.StatusBlocked || t.Status == types.StatusNeedsHuman {
			blocked = append(blocked, t)
		}
	}
	return blocked
}

// Estimate projects remaining effort from the average duration of
// tasks with both start and completion stamps. HasAverage is false
// when no completed task carries both stamps.
type Estimate struct {
	RemainingTasks   int     `json:"remaining_tasks" yaml:"remaining_tasks"`
	HasAverage       bool    `json:"has_average" yaml:"has_average"`
	AvgTaskMinutes   float64 `json:"avg_task_minutes" yaml:"avg_task_minutes"`
	RemainingMinutes float64 `json:"estimated_remaining_minutes" yaml:"estimated_remaining_minutes"`
}

// EstimateRemaining computes the remaining-work estimate for the task
// set, given the already calculated progress.
func EstimateRemaining(tasks []types.Task, p Progress) Estimate {
	est := Estimate{RemainingTasks: p.Pending + p.InProgress}

	var total time.Duration
	var n int
	for _, t := range tasks {
		if t.StartedAt == nil || t.CompletedAt == nil {
			continue
		}
		if d := t.CompletedAt.Sub(*t.StartedAt); d > 0 {
			total += d
			n++
		}
	}
	if n == 0 {
		return est
	}

	avg := total / time.Duration(n)
	est.HasAverage = true
	est.AvgTaskMinutes = avg.Minutes()
	est.RemainingMinutes = avg.Minutes() * float64(est.RemainingTasks)
	return est
}

// Report bundles everything a rendered progress report contains.
type Report struct {
	Project   types.Project `json:"project" yaml:"project"`
	Phase     string        `json:"phase" yaml:"phase"`
	Generated time.Time     `json:"generated" yaml:"generated"`
	Progress  Progress      `json:"progress" yaml:"progress"`
	Timeline  []types.Task  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Blockers  []types.Task  `json:"blockers,omitempty" yaml:"blockers,omitempty"`
	Estimate  Estimate      `json:"estimate" yaml:"estimate"`
}

// Build assembles the full report for a document. The generation time
// is injected so output is deterministic under test.
func Build(doc *types.StateDocument, now time.Time) Report {
	progress := Calculate(doc.Tasks)
	return Report{
		Project:   doc.Project,
		Phase:     doc.Phase,
		Generated: now,
		Progress:  progress,
		Timeline:  Timeline(doc.Tasks),
		Blockers:  Blockers(doc.Tasks),
		Estimate:  EstimateRemaining(doc.Tasks, progress),
	}
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Progress Report: %s\n\n", r.Project.Name)
	if r.Project.Goal != "" {
		fmt.Fprintf(&b, "> %s\n\n", r.Project.Goal)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Generated.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Status\n\n")
	fmt.Fprintf(&b, "- **Phase**: %s\n", r.Phase)
	fmt.Fprintf(&b, "- **Progress**: %.0f%% (%d/%d tasks done)\n",
		r.Progress.Percentage, r.Progress.Done, r.Progress.Total)
	fmt.Fprintf(&b, "- **In progress**: %d\n", r.Progress.InProgress)
	fmt.Fprintf(&b, "- **Pending**: %d\n\n", r.Progress.Pending)

	if len(r.Timeline) > 0 {
		fmt.Fprintf(&b, "## Completed\n\n")
		for _, t := range r.Timeline {
			fmt.Fprintf(&b, "- [x] %s (%s)\n", t.Name, t.ID)
		}
		b.WriteString("\n")
	}

	if len(r.Blockers) > 0 {
		fmt.Fprintf(&b, "## Blockers\n\n")
		for _, t := range r.Blockers {
			fmt.Fprintf(&b, "- %s (%s): %s\n", t.Name, t.ID, t.Status)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Remaining\n\n")
	fmt.Fprintf(&b, "- Tasks: %d\n", r.Estimate.RemainingTasks)
	if r.Estimate.HasAverage {
		fmt.Fprintf(&b, "- Average task duration: %.1f min\n", r.Estimate.AvgTaskMinutes)
		fmt.Fprintf(&b, "- Estimated remaining: %.1f min\n", r.Estimate.RemainingMinutes)
	}

	return b.String()
}

// Text renders the report as a compact plain-text summary.
func (r Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", r.Project.Name)
	fmt.Fprintf(&b, "Phase:   %s\n", r.Phase)
	fmt.Fprintf(&b, "Done:    %d/%d (%.0f%%)\n",
		r.Progress.Done, r.Progress.Total, r.Progress.Percentage)
	fmt.Fprintf(&b, "Active:  %d  Pending: %d  Blocked: %d\n",
		r.Progress.InProgress, r.Progress.Pending,
		r.Progress.Blocked+r.Progress.NeedsHuman)
	for _, t := range r.Blockers {
		fmt.Fprintf(&b, "  ! %s (%s)\n", t.Name, t.ID)
	}
	return b.String()
}
