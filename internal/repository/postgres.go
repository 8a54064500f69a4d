package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// maxTxAttempts bounds how often an event transaction is retried after a
// serialization failure or deadlock.
const maxTxAttempts = 3

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"

	uniqueUserPerEvent = "registrations_event_user_key"
)

// RetryObserver is told about every retried transaction.
type RetryObserver interface {
	TxRetried()
}

// Postgres handles persistence for events and registrations in PostgreSQL.
// It uses pgx directly (no ORM).
type Postgres struct {
	db     *pgxpool.Pool
	logger *zap.Logger
	retry  RetryObserver
}

// Option configures a Postgres store.
type Option func(*Postgres)

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Postgres) { p.logger = l }
}

// WithRetryObserver registers an observer for retried transactions.
func WithRetryObserver(o RetryObserver) Option {
	return func(p *Postgres) { p.retry = o }
}

// NewPostgres constructs a Postgres store.
func NewPostgres(db *pgxpool.Pool, opts ...Option) *Postgres {
	p := &Postgres{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

const eventColumns = `e.id, e.name, e.description, e.committee_id, e.created_by,
	e.registration_start, e.registration_end, e.registration_max, e.waiting_list_max,
	e.required_membership_status, e.questions, e.is_published, e.created_at, e.updated_at`

const eventCounts = `
	(SELECT count(*) FROM registrations r WHERE r.event_id = e.id AND r.waiting_list_position IS NULL),
	(SELECT count(*) FROM registrations r WHERE r.event_id = e.id AND r.waiting_list_position IS NOT NULL)`

// CreateEvent inserts a new event.
func (p *Postgres) CreateEvent(ctx context.Context, e *model.Event) error {
	var start, end *time.Time
	if e.RegistrationPeriod != nil {
		start, end = &e.RegistrationPeriod.Start, &e.RegistrationPeriod.End
	}
	_, err := p.db.Exec(ctx,
		`INSERT INTO events (id, name, description, committee_id, created_by,
		                     registration_start, registration_end, registration_max, waiting_list_max,
		                     required_membership_status, questions, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.Name, e.Description, e.Owner.CommitteeID, e.Owner.CreatedBy,
		start, end, e.Capacity.RegistrationMax, e.Capacity.WaitingListMax,
		statusStrings(e.RequiredMembershipStatus), e.Questions, e.IsPublished, e.Created, e.Updated,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetEvent returns a single event with its registration counts or ErrNotFound.
func (p *Postgres) GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+eventColumns+`,`+eventCounts+` FROM events e WHERE e.id = $1`, id)
	e, err := scanEvent(row, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events ordered by creation time descending.
func (p *Postgres) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+eventColumns+`,`+eventCounts+` FROM events e ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

const registrationColumns = `id, event_id, user_id, name, answers, attended, waiting_list_position, created_at, updated_at`

const registrationOrder = `ORDER BY waiting_list_position ASC NULLS FIRST, created_at ASC, id ASC`

// GetRegistration returns a single registration or ErrNotFound.
func (p *Postgres) GetRegistration(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	return getRegistration(ctx, p.db, id)
}

// ListRegistrations returns the registrations of an event, confirmed first.
func (p *Postgres) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]model.Registration, error) {
	return p.listRegistrations(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 `+registrationOrder, eventID)
}

// ListUserRegistrations returns all registrations of a user.
func (p *Postgres) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]model.Registration, error) {
	return p.listRegistrations(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = $1 `+registrationOrder, userID)
}

// ListRegisteredUsers returns the names of everybody registered for an event.
func (p *Postgres) ListRegisteredUsers(ctx context.Context, eventID uuid.UUID) ([]model.BasicUser, error) {
	rows, err := p.db.Query(ctx,
		`SELECT user_id, name FROM registrations WHERE event_id = $1 `+registrationOrder, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registered users: %w", err)
	}
	defer rows.Close()

	var users []model.BasicUser
	for rows.Next() {
		var u model.BasicUser
		if err := rows.Scan(&u.UserID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan registered user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *Postgres) listRegistrations(ctx context.Context, sql string, arg any) ([]model.Registration, error) {
	rows, err := p.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// RunInEventTx runs fn inside a transaction that holds an exclusive lock on
// the event row.
//
// Every mutation of an event's registrations takes the same lock first, so
// two requests can never compute the same waiting list tail: the second one
// blocks on SELECT … FOR UPDATE until the first commits or rolls back and
// then reads the committed counts. Serialization failures and deadlocks
// restart the whole closure; any other error rolls back and is returned.
func (p *Postgres) RunInEventTx(ctx context.Context, eventID uuid.UUID, fn TxFunc) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = p.runEventTx(ctx, eventID, fn)
		if err == nil || !isTransient(err) || ctx.Err() != nil {
			return err
		}
		p.logger.Warn("retrying event transaction",
			zap.Stringer("event_id", eventID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if p.retry != nil {
			p.retry.TxRetried()
		}
	}
	return err
}

func (p *Postgres) runEventTx(ctx context.Context, eventID uuid.UUID, fn TxFunc) (err error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	row := tx.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1 FOR UPDATE`, eventID)
	event, err := scanEvent(row, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}
	err = tx.QueryRow(ctx,
		`SELECT count(*) FILTER (WHERE waiting_list_position IS NULL),
		        count(*) FILTER (WHERE waiting_list_position IS NOT NULL)
		 FROM registrations WHERE event_id = $1`,
		eventID,
	).Scan(&event.RegistrationCount, &event.WaitingListCount)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}

	if err = fn(&pgTx{tx: tx}, event); err != nil {
		return err
	}

	// Deferred constraints, including waiting list uniqueness, are checked here.
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getRegistration(ctx context.Context, q querier, id uuid.UUID) (*model.Registration, error) {
	row := q.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func scanEvent(row rowScanner, withCounts bool) (*model.Event, error) {
	var (
		e          model.Event
		start, end *time.Time
		statuses   []string
	)
	dest := []any{
		&e.ID, &e.Name, &e.Description, &e.Owner.CommitteeID, &e.Owner.CreatedBy,
		&start, &end, &e.Capacity.RegistrationMax, &e.Capacity.WaitingListMax,
		&statuses, &e.Questions, &e.IsPublished, &e.Created, &e.Updated,
	}
	if withCounts {
		dest = append(dest, &e.RegistrationCount, &e.WaitingListCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if start != nil && end != nil {
		e.RegistrationPeriod = &model.Period{Start: *start, End: *end}
	}
	e.RequiredMembershipStatus = make([]model.MembershipStatus, 0, len(statuses))
	for _, s := range statuses {
		e.RequiredMembershipStatus = append(e.RequiredMembershipStatus, model.MembershipStatus(s))
	}
	if e.Questions == nil {
		e.Questions = []model.Question{}
	}
	return &e, nil
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var r model.Registration
	err := row.Scan(&r.ID, &r.EventID, &r.UserID, &r.Name, &r.Answers,
		&r.Attended, &r.WaitingListPosition, &r.Created, &r.Updated)
	if err != nil {
		return nil, err
	}
	if r.Answers == nil {
		r.Answers = []model.Answer{}
	}
	return &r, nil
}

func statusStrings(statuses []model.MembershipStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
