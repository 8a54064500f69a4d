package repository

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

type memState struct {
	events        map[uuid.UUID]model.Event
	registrations map[uuid.UUID]model.Registration
}

func (s *memState) clone() *memState {
	return &memState{
		events:        maps.Clone(s.events),
		registrations: maps.Clone(s.registrations),
	}
}

// Memory is an in-process store. Transactions work on a copy of the state that
// replaces the live state on commit, and a single lock serialises them.
type Memory struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		state: &memState{
			events:        map[uuid.UUID]model.Event{},
			registrations: map[uuid.UUID]model.Registration{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvent inserts a new event.
func (m *Memory) CreateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.events[e.ID]; ok {
		return fmt.Errorf("insert event: duplicate id %s", e.ID)
	}
	m.state.events[e.ID] = *e
	return nil
}

// GetEvent returns an event with its registration counts.
func (m *Memory) GetEvent(_ context.Context, id uuid.UUID) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.event(id)
}

// ListEvents returns all events ordered by creation time descending.
func (m *Memory) ListEvents(_ context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]model.Event, 0, len(m.state.events))
	for id := range m.state.events {
		e, _ := m.state.event(id)
		events = append(events, *e)
	}
	slices.SortFunc(events, func(a, b model.Event) int {
		return b.Created.Compare(a.Created)
	})
	return events, nil
}

// GetRegistration returns a single registration or ErrNotFound.
func (m *Memory) GetRegistration(_ context.Context, id uuid.UUID) (*model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// ListRegistrations returns the registrations of an event, confirmed first.
func (m *Memory) ListRegistrations(_ context.Context, eventID uuid.UUID) ([]model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.filter(func(r model.Registration) bool { return r.EventID == eventID }), nil
}

// ListRegisteredUsers returns the names of everybody registered for an event.
func (m *Memory) ListRegisteredUsers(ctx context.Context, eventID uuid.UUID) ([]model.BasicUser, error) {
	regs, err := m.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}
	users := make([]model.BasicUser, 0, len(regs))
	for _, r := range regs {
		users = append(users, model.BasicUser{UserID: r.UserID, Name: r.Name})
	}
	return users, nil
}

// ListUserRegistrations returns all registrations of a user.
func (m *Memory) ListUserRegistrations(_ context.Context, userID uuid.UUID) ([]model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.filter(func(r model.Registration) bool { return r.BelongsTo(userID) }), nil
}

// RunInEventTx runs fn against a private copy of the state and commits it
// only if fn succeeds and ctx is still live.
func (m *Memory) RunInEventTx(ctx context.Context, eventID uuid.UUID, fn TxFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	work := m.state.clone()
	event, err := work.event(eventID)
	if err != nil {
		return err
	}
	if err := fn(&memTx{state: work, now: m.now}, event); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	m.state = work
	return nil
}

func (s *memState) event(id uuid.UUID) (*model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.RegistrationCount, e.WaitingListCount = 0, 0
	for _, r := range s.registrations {
		if r.EventID != id {
			continue
		}
		if r.Confirmed() {
			e.RegistrationCount++
		} else {
			e.WaitingListCount++
		}
	}
	return &e, nil
}

// filter returns matching registrations in the order Postgres lists them:
// confirmed by creation time, then the waiting list by position.
func (s *memState) filter(keep func(model.Registration) bool) []model.Registration {
	var out []model.Registration
	for _, r := range s.registrations {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, compareRegistrations)
	return out
}

func compareRegistrations(a, b model.Registration) int {
	switch {
	case a.WaitingListPosition == nil && b.WaitingListPosition != nil:
		return -1
	case a.WaitingListPosition != nil && b.WaitingListPosition == nil:
		return 1
	case a.WaitingListPosition != nil:
		if c := cmp.Compare(*a.WaitingListPosition, *b.WaitingListPosition); c != 0 {
			return c
		}
	}
	if c := a.Created.Compare(b.Created); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

type memTx struct {
	state *memState
	now   func() time.Time
}

func (t *memTx) GetRegistration(_ context.Context, id uuid.UUID) (*model.Registration, error) {
	r, ok := t.state.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (t *memTx) InsertRegistration(_ context.Context, reg *model.Registration) error {
	for _, r := range t.state.registrations {
		if r.EventID == reg.EventID && reg.UserID != nil && r.BelongsTo(*reg.UserID) {
			return ErrAlreadyRegistered
		}
	}
	t.state.registrations[reg.ID] = *reg
	return nil
}

func (t *memTx) UpdateRegistration(_ context.Context, id uuid.UUID, answers []model.Answer, attended *bool) error {
	r, ok := t.state.registrations[id]
	if !ok {
		return ErrNotFound
	}
	r.Answers = answers
	r.Attended = attended
	r.Updated = t.now()
	t.state.registrations[id] = r
	return nil
}

func (t *memTx) Position(_ context.Context, id uuid.UUID) (uuid.UUID, *int, error) {
	r, ok := t.state.registrations[id]
	if !ok {
		return uuid.Nil, nil, ErrNotFound
	}
	return r.EventID, r.WaitingListPosition, nil
}

func (t *memTx) SetPosition(_ context.Context, id uuid.UUID, pos *int) error {
	r, ok := t.state.registrations[id]
	if !ok {
		return ErrNotFound
	}
	if pos != nil {
		p := *pos
		pos = &p
	}
	r.WaitingListPosition = pos
	r.Updated = t.now()
	t.state.registrations[id] = r
	return nil
}

func (t *memTx) ShiftDown(_ context.Context, eventID uuid.UUID, after int) error {
	t.shift(eventID, func(p int) bool { return p > after }, -1)
	return nil
}

func (t *memTx) ShiftUp(_ context.Context, eventID uuid.UUID, from int) error {
	t.shift(eventID, func(p int) bool { return p >= from }, 1)
	return nil
}

func (t *memTx) shift(eventID uuid.UUID, match func(int) bool, delta int) {
	for id, r := range t.state.registrations {
		if r.EventID != eventID || r.WaitingListPosition == nil || !match(*r.WaitingListPosition) {
			continue
		}
		p := *r.WaitingListPosition + delta
		r.WaitingListPosition = &p
		t.state.registrations[id] = r
	}
}

func (t *memTx) Length(_ context.Context, eventID uuid.UUID) (int, error) {
	n := 0
	for _, r := range t.state.registrations {
		if r.EventID == eventID && r.WaitingListPosition != nil {
			n++
		}
	}
	return n, nil
}

func (t *memTx) Head(_ context.Context, eventID uuid.UUID) (uuid.UUID, bool, error) {
	for id, r := range t.state.registrations {
		if r.EventID == eventID && r.WaitingListPosition != nil && *r.WaitingListPosition == 0 {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (t *memTx) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := t.state.registrations[id]; !ok {
		return ErrNotFound
	}
	delete(t.state.registrations, id)
	return nil
}
