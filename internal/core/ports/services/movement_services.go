package services

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// MovementSvc defines operations on cash box movements.
type MovementSvc interface {
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actor domain.Actor) (*domain.Movement, error)
	ApproveMovement(ctx context.Context, movementID string, actor domain.Actor) (*domain.Movement, error)
	RejectMovement(ctx context.Context, movementID, motive string, actor domain.Actor) (*domain.Movement, error)
	ListMovements(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error)
}

// PolicyPaymentSvc defines operations on policy payments.
type PolicyPaymentSvc interface {
	CreatePolicyPayment(ctx context.Context, req dto.CreatePolicyPaymentRequest, actor domain.Actor) (*domain.PolicyPayment, error)
	ApprovePolicyPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.PolicyPayment, error)
	RejectPolicyPayment(ctx context.Context, paymentID, motive string, actor domain.Actor) (*domain.PolicyPayment, error)
	ListPolicyPayments(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error)
}

// MovementSvcFacade combines movement and policy payment operations.
type MovementSvcFacade interface {
	MovementSvc
	PolicyPaymentSvc
}
