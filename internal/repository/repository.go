// Package repository implements persistence for events and registrations.
// Postgres is the production store; Memory is a transactional in-process twin
// with the same semantics used by tests and the --memory server mode.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/queue"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when the same user registers twice.
var ErrAlreadyRegistered = errors.New("user already registered for this event")

// Tx is the view of one event transaction. All waiting list mutations go
// through it; nothing it writes is visible to others before commit.
type Tx interface {
	queue.Rows
	GetRegistration(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	InsertRegistration(ctx context.Context, reg *model.Registration) error
	UpdateRegistration(ctx context.Context, id uuid.UUID, answers []model.Answer, attended *bool) error
}

// TxFunc runs inside an event transaction. event is a snapshot taken after
// the event was locked, so its counts are stable for the whole call.
type TxFunc func(tx Tx, event *model.Event) error
