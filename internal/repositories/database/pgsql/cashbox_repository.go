package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

const cashBoxColumns = `cash_box_id, kind, branch_id, business_date, saldo_inicial, saldo_final, fondo_fijo,
	responsable, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxCashBoxRepository struct {
	BaseRepository
}

func newPgxCashBoxRepository(pool *pgxpool.Pool) portsrepo.CashBoxRepositoryFacade {
	return &PgxCashBoxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashBoxRepositoryFacade = (*PgxCashBoxRepository)(nil)

func (r *PgxCashBoxRepository) SaveCashBox(ctx context.Context, box domain.CashBox) error {
	query := `
		INSERT INTO cash_boxes (` + cashBoxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		box.CashBoxID,
		box.Kind,
		box.BranchID,
		box.BusinessDate,
		box.SaldoInicial,
		box.SaldoFinal,
		box.FondoFijo,
		box.Responsable,
		box.Status,
		box.CreatedAt,
		box.CreatedBy,
		box.LastUpdatedAt,
		box.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "cash box "+box.CashBoxID)
	}
	return nil
}

func (r *PgxCashBoxRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	query := `SELECT ` + cashBoxColumns + ` FROM cash_boxes WHERE cash_box_id = $1;`
	box, err := scanCashBox(r.Pool.QueryRow(ctx, query, cashBoxID))
	if err != nil {
		return nil, queryError(err, "cash box "+cashBoxID)
	}
	return box, nil
}

func (r *PgxCashBoxRepository) FindActiveCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, businessDate time.Time) (*domain.CashBox, error) {
	query := `
		SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		WHERE kind = $1 AND branch_id = $2 AND business_date = $3
		  AND status NOT IN ('CERRADA', 'CANCELADA')
		LIMIT 1;
	`
	box, err := scanCashBox(r.Pool.QueryRow(ctx, query, kind, branchID, businessDate))
	if err != nil {
		return nil, queryError(err, "active "+string(kind)+" for branch "+branchID)
	}
	return box, nil
}

func (r *PgxCashBoxRepository) FindLatestBalancedCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, before time.Time) (*domain.CashBox, error) {
	query := `
		SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		WHERE kind = $1 AND branch_id = $2 AND business_date < $3
		  AND status IN ('CUADRADA', 'CERRADA')
		ORDER BY business_date DESC, last_updated_at DESC
		LIMIT 1;
	`
	box, err := scanCashBox(r.Pool.QueryRow(ctx, query, kind, branchID, before))
	if err != nil {
		return nil, queryError(err, "previous "+string(kind)+" for branch "+branchID)
	}
	return box, nil
}

func (r *PgxCashBoxRepository) UpdateCashBoxStatus(ctx context.Context, cashBoxID string, from, to domain.CashBoxStatus, userID string, at time.Time) error {
	return updateCashBoxStatus(ctx, r.Pool, cashBoxID, from, to, userID, at)
}

func scanCashBox(row pgx.Row) (*domain.CashBox, error) {
	var box domain.CashBox
	var status string
	err := row.Scan(
		&box.CashBoxID,
		&box.Kind,
		&box.BranchID,
		&box.BusinessDate,
		&box.SaldoInicial,
		&box.SaldoFinal,
		&box.FondoFijo,
		&box.Responsable,
		&status,
		&box.CreatedAt,
		&box.CreatedBy,
		&box.LastUpdatedAt,
		&box.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	// Rows written before the status set was closed may still say ACTIVA.
	if box.Status, err = domain.ParseCashBoxStatus(status); err != nil {
		return nil, err
	}
	return &box, nil
}
