package repositories

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// MovementReader defines read operations for movements.
type MovementReader interface {
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsByCashBox lists a box's movements, optionally filtered by validation state.
	ListMovementsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error)
}

// MovementWriter defines write operations for movements.
type MovementWriter interface {
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// UpdateMovementValidation persists the validation outcome of a movement that is
	// still pending; apperrors.ErrConflict when another validator got there first.
	UpdateMovementValidation(ctx context.Context, movement domain.Movement) error
}

// MovementRepositoryFacade combines all movement repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

// PolicyPaymentReader defines read operations for policy payments.
type PolicyPaymentReader interface {
	FindPolicyPaymentByID(ctx context.Context, paymentID string) (*domain.PolicyPayment, error)
	ListPolicyPaymentsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error)
}

// PolicyPaymentWriter defines write operations for policy payments.
type PolicyPaymentWriter interface {
	SavePolicyPayment(ctx context.Context, payment domain.PolicyPayment) error
	UpdatePolicyPaymentValidation(ctx context.Context, payment domain.PolicyPayment) error
}

// PolicyPaymentRepositoryFacade combines all policy payment repository interfaces.
type PolicyPaymentRepositoryFacade interface {
	PolicyPaymentReader
	PolicyPaymentWriter
}
