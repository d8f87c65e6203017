package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// querier is what pgxpool.Pool and pgx.Tx have in common.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithTx runs fn in a transaction, committing only if fn succeeds.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// queryError maps pgx errors onto application errors.
func queryError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
	}
	return apperrors.NewAppError(500, "database error on "+what, err)
}

// updateCashBoxStatus is the compare-and-swap every status change goes through.
func updateCashBoxStatus(ctx context.Context, q querier, cashBoxID string, from, to domain.CashBoxStatus, userID string, at time.Time) error {
	tag, err := q.Exec(ctx, `
		UPDATE cash_boxes
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE cash_box_id = $1 AND status = $2;
	`, cashBoxID, from, to, at, userID)
	if err != nil {
		return queryError(err, "cash box "+cashBoxID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cash box %s is no longer %s", apperrors.ErrConflict, cashBoxID, from)
	}
	return nil
}

type rowLock string

const (
	lockShare  rowLock = "FOR SHARE"
	lockUpdate rowLock = "FOR UPDATE"
)

// lockCashBoxStatus reads a box's status and holds the row lock until the transaction ends.
func lockCashBoxStatus(ctx context.Context, tx pgx.Tx, cashBoxID string, lock rowLock) (domain.CashBoxStatus, error) {
	var raw string
	err := tx.QueryRow(ctx,
		`SELECT status FROM cash_boxes WHERE cash_box_id = $1 `+string(lock)+`;`,
		cashBoxID,
	).Scan(&raw)
	if err != nil {
		return "", queryError(err, "cash box "+cashBoxID)
	}
	status, err := domain.ParseCashBoxStatus(raw)
	if err != nil {
		return "", apperrors.NewAppError(500, "unreadable status of cash box "+cashBoxID, err)
	}
	return status, nil
}
