// Package queue keeps the waiting list of an event dense. Positions of queued
// registrations always form 0..n-1; every function here must run inside the
// caller's event transaction so no one observes a half-compacted queue.
package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
)

// Rows are the row-level primitives a transactional store provides.
type Rows interface {
	// Position returns the event and current waiting list position of a
	// registration; a nil position means confirmed.
	Position(ctx context.Context, registrationID uuid.UUID) (eventID uuid.UUID, pos *int, err error)
	SetPosition(ctx context.Context, registrationID uuid.UUID, pos *int) error
	// ShiftDown decrements every position of the event greater than after.
	ShiftDown(ctx context.Context, eventID uuid.UUID, after int) error
	// ShiftUp increments every position of the event greater or equal to from.
	ShiftUp(ctx context.Context, eventID uuid.UUID, from int) error
	Length(ctx context.Context, eventID uuid.UUID) (int, error)
	// Head returns the registration at position 0, if any.
	Head(ctx context.Context, eventID uuid.UUID) (uuid.UUID, bool, error)
	Delete(ctx context.Context, registrationID uuid.UUID) error
}

// Observer is notified about queue movements. Metrics implement it.
type Observer interface {
	Compacted(eventID uuid.UUID)
	Promoted(eventID uuid.UUID)
}

type nopObserver struct{}

func (nopObserver) Compacted(uuid.UUID) {}
func (nopObserver) Promoted(uuid.UUID)  {}

// Queue runs the compaction algorithms against a Rows implementation.
type Queue struct {
	rows Rows
	obs  Observer
}

// New wraps rows. A nil observer is allowed.
func New(rows Rows, obs Observer) *Queue {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Queue{rows: rows, obs: obs}
}

// RemoveFromQueue confirms a queued registration and closes the gap it leaves.
// It returns the old position, or nil when the registration was confirmed.
func (q *Queue) RemoveFromQueue(ctx context.Context, registrationID uuid.UUID) (*int, error) {
	eventID, pos, err := q.rows.Position(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, nil
	}
	if err := q.rows.SetPosition(ctx, registrationID, nil); err != nil {
		return nil, fmt.Errorf("clear waiting list position: %w", err)
	}
	if err := q.rows.ShiftDown(ctx, eventID, *pos); err != nil {
		return nil, fmt.Errorf("compact waiting list: %w", err)
	}
	q.obs.Compacted(eventID)
	return pos, nil
}

// Reposition moves a registration to newPos. A nil newPos confirms it. Queued
// targets are limited to the tail and the front of the queue.
func (q *Queue) Reposition(ctx context.Context, registrationID uuid.UUID, newPos *int) error {
	eventID, pos, err := q.rows.Position(ctx, registrationID)
	if err != nil {
		return err
	}
	if equal(pos, newPos) {
		return nil
	}
	if newPos == nil {
		_, err := q.RemoveFromQueue(ctx, registrationID)
		return err
	}

	length, err := q.rows.Length(ctx, eventID)
	if err != nil {
		return fmt.Errorf("count waiting list: %w", err)
	}
	tail := length
	if pos != nil {
		tail--
	}
	if *newPos != tail && *newPos != 0 {
		return apperr.ErrCannotReorder
	}

	// Leave the queue first so no two rows ever share a position.
	if _, err := q.RemoveFromQueue(ctx, registrationID); err != nil {
		return err
	}
	if *newPos == 0 && tail > 0 {
		if err := q.rows.ShiftUp(ctx, eventID, 0); err != nil {
			return fmt.Errorf("make room at front: %w", err)
		}
	}
	if err := q.rows.SetPosition(ctx, registrationID, newPos); err != nil {
		return fmt.Errorf("set waiting list position: %w", err)
	}
	return nil
}

// DeleteAndRebalance deletes a registration. When it held a confirmed seat,
// the head of the queue is promoted into that seat.
func (q *Queue) DeleteAndRebalance(ctx context.Context, registrationID uuid.UUID) error {
	eventID, pos, err := q.rows.Position(ctx, registrationID)
	if err != nil {
		return err
	}
	if pos != nil {
		if _, err := q.RemoveFromQueue(ctx, registrationID); err != nil {
			return err
		}
	} else if err := q.promoteHead(ctx, eventID); err != nil {
		return err
	}
	if err := q.rows.Delete(ctx, registrationID); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (q *Queue) promoteHead(ctx context.Context, eventID uuid.UUID) error {
	head, ok, err := q.rows.Head(ctx, eventID)
	if err != nil {
		return fmt.Errorf("find waiting list head: %w", err)
	}
	if !ok {
		return nil
	}
	if err := q.rows.SetPosition(ctx, head, nil); err != nil {
		return fmt.Errorf("promote waiting list head: %w", err)
	}
	if err := q.rows.ShiftDown(ctx, eventID, 0); err != nil {
		return fmt.Errorf("compact waiting list: %w", err)
	}
	q.obs.Promoted(eventID)
	return nil
}

func equal(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
