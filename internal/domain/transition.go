package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransitionPolicy reports whether a record may move from one status to another.
type TransitionPolicy func(from, to Status) bool

// FullyConnected allows every valid status to move to every valid status,
// including itself.
func FullyConnected(from, to Status) bool {
	return from.IsValid() && to.IsValid()
}

// CanTransition applies policy, falling back to FullyConnected when policy is nil.
func CanTransition(policy TransitionPolicy, from, to Status) bool {
	if policy == nil {
		policy = FullyConnected
	}
	return policy(from, to)
}

// StatusGuard is evaluated by a store against the current status of a record,
// inside the same critical section as the write. A non-nil error aborts the
// change and is returned to the caller unchanged.
type StatusGuard func(current Status) error

// NewStatusGuard combines the transition policy with an optional
// expected-status precondition.
func NewStatusGuard(policy TransitionPolicy, target Status, expected *Status) StatusGuard {
	return func(current Status) error {
		if expected != nil && current != *expected {
			return fmt.Errorf("%w: status is %s, expected %s", ErrConflict, current, *expected)
		}
		if !CanTransition(policy, current, target) {
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, current, target)
		}
		return nil
	}
}

// StatusChange is a single set_status request as seen by a store.
type StatusChange struct {
	Kind   Kind
	ID     uuid.UUID
	Status Status
	At     time.Time
	Guard  StatusGuard
}

// Check runs the guard, if any.
func (c StatusChange) Check(current Status) error {
	if c.Guard == nil {
		return nil
	}
	return c.Guard(current)
}
