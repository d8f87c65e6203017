package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

const corteColumns = `corte_id, cash_box_id, usuario, total_declarado, observaciones, status,
	validated_by, validated_at, cancelled_by, cancel_motive, cancelled_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCorteRepository struct {
	BaseRepository
}

func newPgxCorteRepository(pool *pgxpool.Pool) portsrepo.CorteRepositoryFacade {
	return &PgxCorteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CorteRepositoryFacade = (*PgxCorteRepository)(nil)

func (r *PgxCorteRepository) SaveCorte(ctx context.Context, c domain.UserCorte) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		// Held until commit so a concurrent precuadre waits for this corte and counts it.
		status, err := lockCashBoxStatus(ctx, tx, c.CashBoxID, lockShare)
		if err != nil {
			return err
		}
		if !status.AcceptsMovements() {
			return fmt.Errorf("%w: cash box %s is %s", apperrors.ErrInvalidTransition, c.CashBoxID, status)
		}

		query := `
			INSERT INTO user_cortes (` + corteColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`
		_, err = tx.Exec(ctx, query,
			c.CorteID,
			c.CashBoxID,
			c.Usuario,
			c.TotalDeclarado,
			c.Observaciones,
			c.Status,
			c.ValidatedBy,
			c.ValidatedAt,
			c.CancelledBy,
			c.CancelMotive,
			c.CancelledAt,
			c.CreatedAt,
			c.CreatedBy,
			c.LastUpdatedAt,
			c.LastUpdatedBy,
		)
		if err != nil {
			return queryError(err, "corte of "+c.Usuario)
		}
		return nil
	})
}

func (r *PgxCorteRepository) FindCorteByID(ctx context.Context, corteID string) (*domain.UserCorte, error) {
	query := `SELECT ` + corteColumns + ` FROM user_cortes WHERE corte_id = $1;`
	c, err := scanCorte(r.Pool.QueryRow(ctx, query, corteID))
	if err != nil {
		return nil, queryError(err, "corte "+corteID)
	}
	return c, nil
}

func (r *PgxCorteRepository) FindCorteByUser(ctx context.Context, cashBoxID, usuario string) (*domain.UserCorte, error) {
	query := `
		SELECT ` + corteColumns + `
		FROM user_cortes
		WHERE cash_box_id = $1 AND usuario = $2 AND status <> 'CANCELADO'
		LIMIT 1;
	`
	c, err := scanCorte(r.Pool.QueryRow(ctx, query, cashBoxID, usuario))
	if err != nil {
		return nil, queryError(err, "corte of "+usuario)
	}
	return c, nil
}

func (r *PgxCorteRepository) ListCortesByCashBox(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error) {
	query := `SELECT ` + corteColumns + ` FROM user_cortes WHERE cash_box_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, cashBoxID)
	if err != nil {
		return nil, queryError(err, "cortes of cash box "+cashBoxID)
	}
	defer rows.Close()

	var cortes []domain.UserCorte
	for rows.Next() {
		c, err := scanCorte(rows)
		if err != nil {
			return nil, queryError(err, "cortes of cash box "+cashBoxID)
		}
		cortes = append(cortes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err, "cortes of cash box "+cashBoxID)
	}
	return cortes, nil
}

func (r *PgxCorteRepository) CountPendingCortes(ctx context.Context, cashBoxID string) (int, error) {
	return countPendingCortes(ctx, r.Pool, cashBoxID)
}

func countPendingCortes(ctx context.Context, q querier, cashBoxID string) (int, error) {
	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_cortes WHERE cash_box_id = $1 AND status = 'PENDIENTE';`,
		cashBoxID,
	).Scan(&count)
	if err != nil {
		return 0, queryError(err, "pending cortes of cash box "+cashBoxID)
	}
	return count, nil
}

// ensureNoPendingCortes runs after the status swap that leaves ABIERTA, in the same
// transaction, so a corte committed in between still blocks the transition.
func ensureNoPendingCortes(ctx context.Context, tx pgx.Tx, cashBoxID string) error {
	pending, err := countPendingCortes(ctx, tx, cashBoxID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: %d pending", apperrors.ErrBlockedByPendingUsers, pending)
	}
	return nil
}

func (r *PgxCorteRepository) UpdateCorte(ctx context.Context, c domain.UserCorte, expected domain.CorteStatus) error {
	query := `
		UPDATE user_cortes
		SET status = $3, validated_by = $4, validated_at = $5,
		    cancelled_by = $6, cancel_motive = $7, cancelled_at = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE corte_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		c.CorteID,
		expected,
		c.Status,
		c.ValidatedBy,
		c.ValidatedAt,
		c.CancelledBy,
		c.CancelMotive,
		c.CancelledAt,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "corte "+c.CorteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: corte %s is no longer %s", apperrors.ErrConflict, c.CorteID, expected)
	}
	return nil
}

func scanCorte(row pgx.Row) (*domain.UserCorte, error) {
	var c domain.UserCorte
	err := row.Scan(
		&c.CorteID,
		&c.CashBoxID,
		&c.Usuario,
		&c.TotalDeclarado,
		&c.Observaciones,
		&c.Status,
		&c.ValidatedBy,
		&c.ValidatedAt,
		&c.CancelledBy,
		&c.CancelMotive,
		&c.CancelledAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
