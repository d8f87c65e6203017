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

const movementColumns = `movement_id, cash_box_id, movement_type, payment_method, amount, concept,
	voucher_ref, manager_approval_ref, bank_account_id, validado, validated_by, validated_at,
	rejection_motive, created_at, created_by, last_updated_at, last_updated_by`

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func (r *PgxMovementRepository) SaveMovement(ctx context.Context, m domain.Movement) error {
	return insertMovement(ctx, r.Pool, m)
}

// insertMovement is shared with the cuadre transaction that books transfers.
func insertMovement(ctx context.Context, q querier, m domain.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := q.Exec(ctx, query,
		m.MovementID,
		m.CashBoxID,
		m.Type,
		m.Method,
		m.Amount,
		m.Concept,
		m.VoucherRef,
		m.ManagerApprovalRef,
		m.BankAccountID,
		int16(m.Validado),
		m.ValidatedBy,
		m.ValidatedAt,
		m.RejectionMotive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "movement "+m.MovementID)
	}
	return nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`
	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		return nil, queryError(err, "movement "+movementID)
	}
	return m, nil
}

func (r *PgxMovementRepository) ListMovementsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE cash_box_id = $1 AND ($2::SMALLINT IS NULL OR validado = $2)
		ORDER BY created_at, movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, cashBoxID, validationFilter(state))
	if err != nil {
		return nil, queryError(err, "movements of cash box "+cashBoxID)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, queryError(err, "movements of cash box "+cashBoxID)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err, "movements of cash box "+cashBoxID)
	}
	return movements, nil
}

func (r *PgxMovementRepository) UpdateMovementValidation(ctx context.Context, m domain.Movement) error {
	query := `
		UPDATE movements
		SET validado = $2, validated_by = $3, validated_at = $4, rejection_motive = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE movement_id = $1 AND validado = 0;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.MovementID,
		int16(m.Validado),
		m.ValidatedBy,
		m.ValidatedAt,
		m.RejectionMotive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "movement "+m.MovementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movement %s is no longer pending", apperrors.ErrConflict, m.MovementID)
	}
	return nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var m domain.Movement
	var validado int16
	err := row.Scan(
		&m.MovementID,
		&m.CashBoxID,
		&m.Type,
		&m.Method,
		&m.Amount,
		&m.Concept,
		&m.VoucherRef,
		&m.ManagerApprovalRef,
		&m.BankAccountID,
		&validado,
		&m.ValidatedBy,
		&m.ValidatedAt,
		&m.RejectionMotive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Validado = domain.ValidationState(validado)
	return &m, nil
}

// validationFilter turns an optional state into a nullable query argument.
func validationFilter(state *domain.ValidationState) *int16 {
	if state == nil {
		return nil
	}
	v := int16(*state)
	return &v
}
