// Package authz is the pure decision layer for lifecycle transitions.
// It holds no state; given a (role, ownership, from, to) tuple it either
// allows the transition or returns ErrForbidden. Callers must leave state
// untouched on denial.
package authz

import (
	"errors"
	"fmt"

	"github.com/forgeboard/forgeboard/internal/types"
)

// ErrForbidden indicates the actor is not permitted to perform the
// requested transition or mutation.
var ErrForbidden = errors.New("forbidden")

// CanTransition decides whether role may move a project from one status to
// another. The table is authoritative; anything not listed is denied.
//
//	pending|active|on-hold  -> pending-closure   owning client only
//	pending-closure         -> closed            admin only
//	any non-terminal        -> pending|active|on-hold|completed   admin only
//
// closed is terminal: no outbound transitions for anyone.
func CanTransition(role types.Role, isOwner bool, from, to types.RequestStatus) error {
	if !types.ValidStatus(from) || !types.ValidStatus(to) {
		return fmt.Errorf("%w: unknown status in transition %s -> %s", ErrForbidden, from, to)
	}
	if from == types.StatusClosed {
		return fmt.Errorf("%w: %s is terminal", ErrForbidden, types.StatusClosed)
	}

	switch to {
	case types.StatusPendingClosure:
		if role == types.RoleClient && isOwner && closureRequestable(from) {
			return nil
		}
	case types.StatusClosed:
		if role == types.RoleAdmin && from == types.StatusPendingClosure {
			return nil
		}
	case types.StatusPending, types.StatusActive, types.StatusOnHold, types.StatusCompleted:
		if role == types.RoleAdmin {
			return nil
		}
	}

	return fmt.Errorf("%w: %s may not move project %s -> %s", ErrForbidden, role, from, to)
}

// closureRequestable reports whether a client may request closure from the
// given status.
func closureRequestable(from types.RequestStatus) bool {
	switch from {
	case types.StatusPending, types.StatusActive, types.StatusOnHold:
		return true
	}
	return false
}

// RequireAdmin returns ErrForbidden unless the identity carries the admin
// role. Used for progress and roster mutations.
func RequireAdmin(actor types.Identity) error {
	if actor.Role != types.RoleAdmin {
		return fmt.Errorf("%w: %s role may not perform admin mutations", ErrForbidden, actor.Role)
	}
	return nil
}

// RequireOwner returns ErrForbidden unless the identity owns the request.
// Used for draft mutations and publish.
func RequireOwner(actor types.Identity, ownerID string) error {
	if actor.UID != ownerID {
		return fmt.Errorf("%w: only the owning client may modify this request", ErrForbidden)
	}
	return nil
}
