package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

const precuadreColumns = `precuadre_id, cash_box_id, saldo_esperado, efectivo_contado, total_vouchers,
	diferencia, observaciones, locked, created_at, created_by, last_updated_at, last_updated_by`

const cuadreColumns = `cuadre_id, cash_box_id, precuadre_id, fondo_fijo, saldo_inicial,
	total_efectivo, total_tarjeta, total_transferencia, total_deposito_ventanilla, total_egresos,
	total_depositos_banco, saldo_disponible, entrega_a_general, saldo_final, diferencia,
	observaciones, status, transfer_movement_id, cancelled_by, cancel_motive, cancelled_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxReconciliationRepository persists precuadres and cuadres together with the
// status change of their cash box.
type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func (r *PgxReconciliationRepository) SavePrecuadre(ctx context.Context, p domain.Precuadre) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := updateCashBoxStatus(ctx, tx, p.CashBoxID, domain.StatusOpen, domain.StatusPreBalance, p.CreatedBy, p.CreatedAt); err != nil {
			return err
		}
		if err := ensureNoPendingCortes(ctx, tx, p.CashBoxID); err != nil {
			return err
		}
		query := `
			INSERT INTO precuadres (` + precuadreColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, query,
			p.PrecuadreID,
			p.CashBoxID,
			p.SaldoEsperado,
			p.EfectivoContado,
			p.TotalVouchers,
			p.Diferencia,
			p.Observaciones,
			p.Locked,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
		if err != nil {
			return queryError(err, "precuadre "+p.PrecuadreID)
		}
		return nil
	})
}

func (r *PgxReconciliationRepository) DiscardPrecuadre(ctx context.Context, cashBoxID string, userID string, at time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := updateCashBoxStatus(ctx, tx, cashBoxID, domain.StatusPreBalance, domain.StatusOpen, userID, at); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM precuadres WHERE cash_box_id = $1 AND locked = FALSE;`, cashBoxID)
		if err != nil {
			return queryError(err, "precuadre of cash box "+cashBoxID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: no unlocked precuadre for cash box %s", apperrors.ErrConflict, cashBoxID)
		}
		return nil
	})
}

func (r *PgxReconciliationRepository) SaveCuadre(ctx context.Context, c domain.Cuadre, transfer *domain.Movement) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := updateCashBoxStatus(ctx, tx, c.CashBoxID, domain.StatusPreBalance, domain.StatusBalanced, c.CreatedBy, c.CreatedAt); err != nil {
			return err
		}
		if err := ensureNoPendingCortes(ctx, tx, c.CashBoxID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE cash_boxes SET saldo_final = $2 WHERE cash_box_id = $1;`,
			c.CashBoxID, c.SaldoFinal,
		); err != nil {
			return queryError(err, "cash box "+c.CashBoxID)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE precuadres SET locked = TRUE, last_updated_at = $3, last_updated_by = $4
			WHERE precuadre_id = $1 AND cash_box_id = $2 AND locked = FALSE;
		`, c.PrecuadreID, c.CashBoxID, c.CreatedAt, c.CreatedBy)
		if err != nil {
			return queryError(err, "precuadre "+c.PrecuadreID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: precuadre %s is already locked", apperrors.ErrConflict, c.PrecuadreID)
		}

		if transfer != nil {
			// The receiving box must still be open when the transfer lands.
			status, err := lockCashBoxStatus(ctx, tx, transfer.CashBoxID, lockUpdate)
			if err != nil {
				return err
			}
			if !status.AcceptsMovements() {
				return fmt.Errorf("%w: general cash box %s is %s", apperrors.ErrConflict, transfer.CashBoxID, status)
			}
			if err := insertMovement(ctx, tx, *transfer); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO cuadres (` + cuadreColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
		`
		if _, err := tx.Exec(ctx, query,
			c.CuadreID,
			c.CashBoxID,
			c.PrecuadreID,
			c.FondoFijo,
			c.SaldoInicial,
			c.TotalEfectivo,
			c.TotalTarjeta,
			c.TotalTransferencia,
			c.TotalDepositoVentanilla,
			c.TotalEgresos,
			c.TotalDepositosBanco,
			c.SaldoDisponible,
			c.EntregaAGeneral,
			c.SaldoFinal,
			c.Diferencia,
			c.Observaciones,
			c.Status,
			c.TransferMovementID,
			c.CancelledBy,
			c.CancelMotive,
			c.CancelledAt,
			c.CreatedAt,
			c.CreatedBy,
			c.LastUpdatedAt,
			c.LastUpdatedBy,
		); err != nil {
			return queryError(err, "cuadre "+c.CuadreID)
		}

		if len(c.Deposits) > 0 {
			batch := &pgx.Batch{}
			for i, d := range c.Deposits {
				batch.Queue(`
					INSERT INTO cuadre_deposits (cuadre_id, position, bank_account_id, amount, reference)
					VALUES ($1, $2, $3, $4, $5);
				`, c.CuadreID, i, d.BankAccountID, d.Amount, d.Reference)
			}
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return queryError(err, "deposits of cuadre "+c.CuadreID)
			}
		}

		return nil
	})
}

func (r *PgxReconciliationRepository) CancelCuadre(ctx context.Context, c domain.Cuadre) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		at := c.LastUpdatedAt
		if err := updateCashBoxStatus(ctx, tx, c.CashBoxID, domain.StatusBalanced, domain.StatusCancelled, c.LastUpdatedBy, at); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE cuadres
			SET status = $2, cancelled_by = $3, cancel_motive = $4, cancelled_at = $5,
			    last_updated_at = $6, last_updated_by = $7
			WHERE cuadre_id = $1 AND status <> 'CANCELADA';
		`, c.CuadreID, c.Status, c.CancelledBy, c.CancelMotive, c.CancelledAt, c.LastUpdatedAt, c.LastUpdatedBy)
		if err != nil {
			return queryError(err, "cuadre "+c.CuadreID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: cuadre %s is already cancelled", apperrors.ErrConflict, c.CuadreID)
		}
		if c.TransferMovementID != nil {
			return rejectTransfer(ctx, tx, *c.TransferMovementID, c)
		}
		return nil
	})
}

// rejectTransfer takes back the income a cancelled cuadre booked in the general box.
// The general box must still be open; its totals are final otherwise.
func rejectTransfer(ctx context.Context, tx pgx.Tx, movementID string, c domain.Cuadre) error {
	var generalID string
	err := tx.QueryRow(ctx,
		`SELECT cash_box_id FROM movements WHERE movement_id = $1;`,
		movementID,
	).Scan(&generalID)
	if err != nil {
		return queryError(err, "transfer movement "+movementID)
	}
	status, err := lockCashBoxStatus(ctx, tx, generalID, lockUpdate)
	if err != nil {
		return err
	}
	if !status.AcceptsMovements() {
		return fmt.Errorf("%w: general cash box %s is %s and cannot return transfer %s",
			apperrors.ErrInvalidTransition, generalID, status, movementID)
	}

	motive := "Cuadre " + c.CuadreID + " cancelado"
	if c.CancelMotive != nil {
		motive += ": " + *c.CancelMotive
	}
	tag, err := tx.Exec(ctx, `
		UPDATE movements
		SET validado = $2, validated_by = $3, validated_at = $4, rejection_motive = $5,
		    last_updated_at = $4, last_updated_by = $3
		WHERE movement_id = $1 AND validado = $6;
	`, movementID, int16(domain.ValidationRejected), c.LastUpdatedBy, c.LastUpdatedAt, motive, int16(domain.ValidationApproved))
	if err != nil {
		return queryError(err, "transfer movement "+movementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer movement %s is no longer approved", apperrors.ErrConflict, movementID)
	}
	return nil
}

func (r *PgxReconciliationRepository) FindPrecuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Precuadre, error) {
	query := `
		SELECT ` + precuadreColumns + `
		FROM precuadres
		WHERE cash_box_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var p domain.Precuadre
	err := r.Pool.QueryRow(ctx, query, cashBoxID).Scan(
		&p.PrecuadreID,
		&p.CashBoxID,
		&p.SaldoEsperado,
		&p.EfectivoContado,
		&p.TotalVouchers,
		&p.Diferencia,
		&p.Observaciones,
		&p.Locked,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, queryError(err, "precuadre of cash box "+cashBoxID)
	}
	return &p, nil
}

func (r *PgxReconciliationRepository) FindCuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Cuadre, error) {
	query := `
		SELECT ` + cuadreColumns + `
		FROM cuadres
		WHERE cash_box_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var c domain.Cuadre
	err := r.Pool.QueryRow(ctx, query, cashBoxID).Scan(
		&c.CuadreID,
		&c.CashBoxID,
		&c.PrecuadreID,
		&c.FondoFijo,
		&c.SaldoInicial,
		&c.TotalEfectivo,
		&c.TotalTarjeta,
		&c.TotalTransferencia,
		&c.TotalDepositoVentanilla,
		&c.TotalEgresos,
		&c.TotalDepositosBanco,
		&c.SaldoDisponible,
		&c.EntregaAGeneral,
		&c.SaldoFinal,
		&c.Diferencia,
		&c.Observaciones,
		&c.Status,
		&c.TransferMovementID,
		&c.CancelledBy,
		&c.CancelMotive,
		&c.CancelledAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, queryError(err, "cuadre of cash box "+cashBoxID)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT bank_account_id, amount, reference
		FROM cuadre_deposits
		WHERE cuadre_id = $1
		ORDER BY position;
	`, c.CuadreID)
	if err != nil {
		return nil, queryError(err, "deposits of cuadre "+c.CuadreID)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.BankDeposit
		if err := rows.Scan(&d.BankAccountID, &d.Amount, &d.Reference); err != nil {
			return nil, queryError(err, "deposits of cuadre "+c.CuadreID)
		}
		c.Deposits = append(c.Deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err, "deposits of cuadre "+c.CuadreID)
	}
	return &c, nil
}
