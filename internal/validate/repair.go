package validate

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Repair applies bounded, mechanical fixes to the document in place
// and returns a description of each change. It backfills lifecycle
// timestamps that the current status already implies (status completed
// but no completed_at, and so on) and refreshes the session's
// last_updated stamp when anything changed or the stamp was missing.
//
// Repair never invents task ids, never resolves dangling dependencies,
// and never breaks cycles; those need human or agent judgment and stay
// errors afterward. It is idempotent: a second run over an already
// repaired document reports no changes, because populated timestamps
// are left untouched.
func Repair(doc *types.StateDocument, now time.Time) []string {
	var changes []string

	for i := range doc.Tasks {
		task := &doc.Tasks[i]
		switch task.Status {
		case types.StatusInProgress:
			if task.StartedAt == nil {
				stamp := now
				task.StartedAt = &stamp
				changes = append(changes, fmt.Sprintf("Set started_at for %s", task.ID))
			}
		case types.StatusCompleted:
			if task.CompletedAt == nil {
				stamp := now
				task.CompletedAt = &stamp
				changes = append(changes, fmt.Sprintf("Set completed_at for %s", task.ID))
			}
		case types.StatusVerified:
			if task.VerifiedAt == nil {
				stamp := now
				task.VerifiedAt = &stamp
				changes = append(changes, fmt.Sprintf("Set verified_at for %s", task.ID))
			}
		}
	}

	if len(changes) > 0 || doc.Session.LastUpdated.IsZero() {
		doc.Session.LastUpdated = now
		changes = append(changes, "Updated session.last_updated")
	}

	return changes
}
