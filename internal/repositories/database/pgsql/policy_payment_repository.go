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

const policyPaymentColumns = `payment_id, cash_box_id, policy_number, insured, amount, payment_method,
	validado, validated_by, validated_at, rejection_motive,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPolicyPaymentRepository struct {
	BaseRepository
}

func newPgxPolicyPaymentRepository(pool *pgxpool.Pool) portsrepo.PolicyPaymentRepositoryFacade {
	return &PgxPolicyPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PolicyPaymentRepositoryFacade = (*PgxPolicyPaymentRepository)(nil)

func (r *PgxPolicyPaymentRepository) SavePolicyPayment(ctx context.Context, p domain.PolicyPayment) error {
	query := `
		INSERT INTO policy_payments (` + policyPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.PaymentID,
		p.CashBoxID,
		p.PolicyNumber,
		p.Insured,
		p.Amount,
		p.Method,
		int16(p.Validado),
		p.ValidatedBy,
		p.ValidatedAt,
		p.RejectionMotive,
		p.CreatedAt,
		p.CreatedBy,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "policy payment "+p.PaymentID)
	}
	return nil
}

func (r *PgxPolicyPaymentRepository) FindPolicyPaymentByID(ctx context.Context, paymentID string) (*domain.PolicyPayment, error) {
	query := `SELECT ` + policyPaymentColumns + ` FROM policy_payments WHERE payment_id = $1;`
	p, err := scanPolicyPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, queryError(err, "policy payment "+paymentID)
	}
	return p, nil
}

func (r *PgxPolicyPaymentRepository) ListPolicyPaymentsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error) {
	query := `
		SELECT ` + policyPaymentColumns + `
		FROM policy_payments
		WHERE cash_box_id = $1 AND ($2::SMALLINT IS NULL OR validado = $2)
		ORDER BY created_at, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, cashBoxID, validationFilter(state))
	if err != nil {
		return nil, queryError(err, "policy payments of cash box "+cashBoxID)
	}
	defer rows.Close()

	var payments []domain.PolicyPayment
	for rows.Next() {
		p, err := scanPolicyPayment(rows)
		if err != nil {
			return nil, queryError(err, "policy payments of cash box "+cashBoxID)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err, "policy payments of cash box "+cashBoxID)
	}
	return payments, nil
}

func (r *PgxPolicyPaymentRepository) UpdatePolicyPaymentValidation(ctx context.Context, p domain.PolicyPayment) error {
	query := `
		UPDATE policy_payments
		SET validado = $2, validated_by = $3, validated_at = $4, rejection_motive = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND validado = 0;
	`
	tag, err := r.Pool.Exec(ctx, query,
		p.PaymentID,
		int16(p.Validado),
		p.ValidatedBy,
		p.ValidatedAt,
		p.RejectionMotive,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	if err != nil {
		return queryError(err, "policy payment "+p.PaymentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: policy payment %s is no longer pending", apperrors.ErrConflict, p.PaymentID)
	}
	return nil
}

func scanPolicyPayment(row pgx.Row) (*domain.PolicyPayment, error) {
	var p domain.PolicyPayment
	var validado int16
	err := row.Scan(
		&p.PaymentID,
		&p.CashBoxID,
		&p.PolicyNumber,
		&p.Insured,
		&p.Amount,
		&p.Method,
		&validado,
		&p.ValidatedBy,
		&p.ValidatedAt,
		&p.RejectionMotive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Validado = domain.ValidationState(validado)
	return &p, nil
}
