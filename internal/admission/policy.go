// Package admission decides whether a signup gets a confirmed seat or a place
// on the waiting list. Decide is pure: it reads counts taken inside the
// caller's event transaction and never touches storage.
package admission

import (
	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// Current is the state of the registration being updated.
type Current struct {
	Position *int
	Attended *bool
}

// Input describes one admission request.
type Input struct {
	Capacity   model.Capacity
	Confirmed  int
	QueueLen   int
	Privileged bool
	// Requested is an explicit waiting list position. Only privileged actors
	// may request one; it is ignored for everybody else.
	Requested *int
	// Current is nil for new registrations.
	Current *Current
	// Attended is the submitted attendance flag.
	Attended *bool
}

// Decision is the outcome of a successful admission.
type Decision struct {
	// Position is nil for a confirmed seat.
	Position *int
	Attended *bool
}

// Outcome labels a decision for logs and metrics.
func (d Decision) Outcome() string {
	if d.Position == nil {
		return "confirmed"
	}
	return "waiting_list"
}

func (in Input) queued() bool {
	return in.Current != nil && in.Current.Position != nil
}

// Decide evaluates the admission rules in order; the first match wins.
func Decide(in Input) (Decision, error) {
	if in.Privileged {
		return decidePrivileged(in)
	}
	if in.Current != nil {
		// Non-privileged actors can neither move themselves in the queue nor
		// mark their own attendance.
		return Decision{Position: in.Current.Position, Attended: in.Current.Attended}, nil
	}
	return decideNew(in)
}

func decidePrivileged(in Input) (Decision, error) {
	if in.Requested == nil {
		return Decision{Attended: in.Attended}, nil
	}
	req := *in.Requested
	if in.queued() && *in.Current.Position == req {
		return Decision{Position: ptr(req), Attended: in.Attended}, nil
	}
	// The only other accepted value is the queue length: append to the tail.
	if in.Capacity.RegistrationMax == nil || req != in.QueueLen {
		return Decision{}, apperr.ErrInvalidPosition
	}
	if in.queued() {
		// Leaving its old slot shortens the queue by one, so the tail it
		// moves to is the last index.
		return Decision{Position: ptr(in.QueueLen - 1), Attended: in.Attended}, nil
	}
	if waitMax := in.Capacity.WaitingListMax; waitMax != nil && in.QueueLen >= *waitMax {
		return Decision{}, apperr.ErrCapacityExceeded
	}
	return Decision{Position: ptr(req), Attended: in.Attended}, nil
}

func decideNew(in Input) (Decision, error) {
	limit := in.Capacity.RegistrationMax
	if limit == nil || in.Confirmed < *limit {
		return Decision{}, nil
	}
	if waitMax := in.Capacity.WaitingListMax; waitMax != nil && in.QueueLen >= *waitMax {
		return Decision{}, apperr.ErrCapacityExceeded
	}
	// Without a waiting list limit the queue is unbounded.
	return Decision{Position: ptr(in.QueueLen)}, nil
}

func ptr(v int) *int { return &v }
