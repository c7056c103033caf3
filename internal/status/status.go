package status

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// NotFoundError marks an unknown court/booking/user reference.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError marks an illegal state transition, a duplicate active
// request or a slot collision. Current and Attempted name the states
// involved when the conflict is a transition.
type ConflictError struct {
	Reason    string
	Current   string
	Attempted string
}

func (e *ConflictError) Error() string {
	if e.Current != "" || e.Attempted != "" {
		return fmt.Sprintf("%s: cannot go from %q to %q", e.Reason, e.Current, e.Attempted)
	}
	return e.Reason
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewConflict(reason string) error {
	return &ConflictError{Reason: reason}
}

func NewTransitionConflict(current, attempted string) error {
	return &ConflictError{Reason: "illegal transition", Current: current, Attempted: attempted}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
