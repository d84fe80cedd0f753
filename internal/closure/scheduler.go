// Package closure computes the deletion horizon stamped when a project is
// approved for closure.
package closure

import "time"

// Retention is how long a closed project is kept before it becomes eligible
// for deletion.
const Retention = 72 * time.Hour

// Schedule returns the absolute deletion timestamp for a closure approved at
// the given instant. The horizon is measured from the approval, not from the
// original closure request, so downstream cleanup compares against a fixed
// instant. closed is terminal in the transition table, so the horizon is
// stamped exactly once per project.
func Schedule(approvedAt time.Time) time.Time {
	return approvedAt.UTC().Add(Retention)
}
