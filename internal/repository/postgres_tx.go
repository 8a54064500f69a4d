package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// pgTx implements Tx on an open pgx transaction.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) GetRegistration(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	return getRegistration(ctx, t.tx, id)
}

func (t *pgTx) InsertRegistration(ctx context.Context, reg *model.Registration) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, name, answers, attended, waiting_list_position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		reg.ID, reg.EventID, reg.UserID, reg.Name, reg.Answers, reg.Attended,
		reg.WaitingListPosition, reg.Created, reg.Updated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == uniqueUserPerEvent {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateRegistration(ctx context.Context, id uuid.UUID, answers []model.Answer, attended *bool) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE registrations SET answers = $2, attended = $3, updated_at = now() WHERE id = $1`,
		id, answers, attended,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *pgTx) Position(ctx context.Context, id uuid.UUID) (uuid.UUID, *int, error) {
	var (
		eventID uuid.UUID
		pos     *int
	)
	err := t.tx.QueryRow(ctx,
		`SELECT event_id, waiting_list_position FROM registrations WHERE id = $1`, id,
	).Scan(&eventID, &pos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil, ErrNotFound
		}
		return uuid.Nil, nil, fmt.Errorf("read waiting list position: %w", err)
	}
	return eventID, pos, nil
}

func (t *pgTx) SetPosition(ctx context.Context, id uuid.UUID, pos *int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE registrations SET waiting_list_position = $2, updated_at = now() WHERE id = $1`,
		id, pos,
	)
	return err
}

func (t *pgTx) ShiftDown(ctx context.Context, eventID uuid.UUID, after int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE registrations
		 SET waiting_list_position = waiting_list_position - 1
		 WHERE event_id = $1 AND waiting_list_position > $2`,
		eventID, after,
	)
	return err
}

func (t *pgTx) ShiftUp(ctx context.Context, eventID uuid.UUID, from int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE registrations
		 SET waiting_list_position = waiting_list_position + 1
		 WHERE event_id = $1 AND waiting_list_position >= $2`,
		eventID, from,
	)
	return err
}

func (t *pgTx) Length(ctx context.Context, eventID uuid.UUID) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx,
		`SELECT count(*) FROM registrations WHERE event_id = $1 AND waiting_list_position IS NOT NULL`,
		eventID,
	).Scan(&n)
	return n, err
}

func (t *pgTx) Head(ctx context.Context, eventID uuid.UUID) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM registrations WHERE event_id = $1 AND waiting_list_position = 0`,
		eventID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

func (t *pgTx) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
