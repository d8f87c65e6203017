package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// movementService records movements and policy payments and runs their
// second-person approval.
type movementService struct {
	BaseService
	boxes     portsrepo.CashBoxReader
	movements portsrepo.MovementRepositoryFacade
	payments  portsrepo.PolicyPaymentRepositoryFacade
}

// NewMovementService creates the movement service.
func NewMovementService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.MovementSvcFacade {
	return &movementService{
		BaseService: newBaseService(options...),
		boxes:       repos.CashBoxRepo,
		movements:   repos.MovementRepo,
		payments:    repos.PolicyPaymentRepo,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

func (s *movementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actor domain.Actor) (*domain.Movement, error) {
	movementType, err := domain.ParseMovementType(req.Tipo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	method, err := domain.ParsePaymentMethod(req.MetodoPago)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := checkReferences(req.Monto, req.VoucherRef, req.ManagerApprovalRef); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Concepto) == "" {
		return nil, fmt.Errorf("%w: concepto is required", apperrors.ErrValidation)
	}
	if err := s.ensureAcceptsMovements(ctx, req.CashBoxID); err != nil {
		return nil, err
	}

	now := s.now()
	movement := domain.Movement{
		MovementID:         uuid.NewString(),
		CashBoxID:          req.CashBoxID,
		Type:               movementType,
		Method:             method,
		Amount:             domain.Money(req.Monto),
		Concept:            strings.TrimSpace(req.Concepto),
		VoucherRef:         trimmed(req.VoucherRef),
		ManagerApprovalRef: trimmed(req.ManagerApprovalRef),
		BankAccountID:      trimmed(req.BankAccountID),
		Validado:           domain.ValidationPending,
		AuditFields:        domain.NewAuditFields(actor.UserID, now),
	}
	// Cash is counted at the window, so it needs no second approval.
	if !method.RequiresSecondApproval() {
		if err := movement.Approve(actor.UserID, now); err != nil {
			return nil, err
		}
	}

	if err := s.movements.SaveMovement(ctx, movement); err != nil {
		s.logUnexpected(ctx, err, "Failed to save movement", slog.String("cash_box_id", req.CashBoxID))
		return nil, err
	}
	s.LogInfo(ctx, "Movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("validado", movement.Validado.String()))
	return &movement, nil
}

func (s *movementService) ApproveMovement(ctx context.Context, movementID string, actor domain.Actor) (*domain.Movement, error) {
	return s.validateMovement(ctx, movementID, actor, func(m *domain.Movement, now time.Time) error {
		return m.Approve(actor.UserID, now)
	})
}

func (s *movementService) RejectMovement(ctx context.Context, movementID, motive string, actor domain.Actor) (*domain.Movement, error) {
	motive = strings.TrimSpace(motive)
	if motive == "" {
		return nil, apperrors.ErrMissingMotive
	}
	return s.validateMovement(ctx, movementID, actor, func(m *domain.Movement, now time.Time) error {
		return m.Reject(actor.UserID, motive, now)
	})
}

func (s *movementService) validateMovement(ctx context.Context, movementID string, actor domain.Actor, apply func(*domain.Movement, time.Time) error) (*domain.Movement, error) {
	if err := requireValidator(actor); err != nil {
		return nil, err
	}
	movement, err := s.movements.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if movement.CreatedBy == actor.UserID {
		return nil, fmt.Errorf("%w: a movement cannot be validated by its creator", apperrors.ErrForbidden)
	}
	if movement.Validado != domain.ValidationPending {
		return nil, fmt.Errorf("%w: movement %s is already %s", apperrors.ErrInvalidTransition, movement.MovementID, movement.Validado)
	}
	if err := s.ensureAcceptsMovements(ctx, movement.CashBoxID); err != nil {
		return nil, err
	}
	if err := apply(movement, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidTransition, err)
	}
	if err := s.movements.UpdateMovementValidation(ctx, *movement); err != nil {
		s.logUnexpected(ctx, err, "Failed to update movement validation", slog.String("movement_id", movementID))
		return nil, err
	}
	s.LogInfo(ctx, "Movement validated",
		slog.String("movement_id", movement.MovementID),
		slog.String("validado", movement.Validado.String()))
	return movement, nil
}

func (s *movementService) ListMovements(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error) {
	movements, err := s.movements.ListMovementsByCashBox(ctx, cashBoxID, state)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list movements", slog.String("cash_box_id", cashBoxID))
		return nil, err
	}
	if movements == nil {
		return []domain.Movement{}, nil
	}
	return movements, nil
}

func (s *movementService) CreatePolicyPayment(ctx context.Context, req dto.CreatePolicyPaymentRequest, actor domain.Actor) (*domain.PolicyPayment, error) {
	method, err := domain.ParsePaymentMethod(req.MetodoPago)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: monto must be positive", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.NumeroPoliza) == "" {
		return nil, fmt.Errorf("%w: numeroPoliza is required", apperrors.ErrValidation)
	}
	if err := s.ensureAcceptsMovements(ctx, req.CashBoxID); err != nil {
		return nil, err
	}

	now := s.now()
	payment := domain.PolicyPayment{
		PaymentID:    uuid.NewString(),
		CashBoxID:    req.CashBoxID,
		PolicyNumber: strings.TrimSpace(req.NumeroPoliza),
		Insured:      strings.TrimSpace(req.Asegurado),
		Amount:       domain.Money(req.Monto),
		Method:       method,
		Validado:     domain.ValidationPending,
		AuditFields:  domain.NewAuditFields(actor.UserID, now),
	}
	if !method.RequiresSecondApproval() {
		if err := payment.Approve(actor.UserID, now); err != nil {
			return nil, err
		}
	}

	if err := s.payments.SavePolicyPayment(ctx, payment); err != nil {
		s.logUnexpected(ctx, err, "Failed to save policy payment", slog.String("cash_box_id", req.CashBoxID))
		return nil, err
	}
	s.LogInfo(ctx, "Policy payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("policy", payment.PolicyNumber))
	return &payment, nil
}

func (s *movementService) ApprovePolicyPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.PolicyPayment, error) {
	return s.validatePayment(ctx, paymentID, actor, func(p *domain.PolicyPayment, now time.Time) error {
		return p.Approve(actor.UserID, now)
	})
}

func (s *movementService) RejectPolicyPayment(ctx context.Context, paymentID, motive string, actor domain.Actor) (*domain.PolicyPayment, error) {
	motive = strings.TrimSpace(motive)
	if motive == "" {
		return nil, apperrors.ErrMissingMotive
	}
	return s.validatePayment(ctx, paymentID, actor, func(p *domain.PolicyPayment, now time.Time) error {
		return p.Reject(actor.UserID, motive, now)
	})
}

func (s *movementService) validatePayment(ctx context.Context, paymentID string, actor domain.Actor, apply func(*domain.PolicyPayment, time.Time) error) (*domain.PolicyPayment, error) {
	if err := requireValidator(actor); err != nil {
		return nil, err
	}
	payment, err := s.payments.FindPolicyPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.CreatedBy == actor.UserID {
		return nil, fmt.Errorf("%w: a payment cannot be validated by whoever recorded it", apperrors.ErrForbidden)
	}
	if payment.Validado != domain.ValidationPending {
		return nil, fmt.Errorf("%w: policy payment %s is already %s", apperrors.ErrInvalidTransition, payment.PaymentID, payment.Validado)
	}
	if err := s.ensureAcceptsMovements(ctx, payment.CashBoxID); err != nil {
		return nil, err
	}
	if err := apply(payment, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidTransition, err)
	}
	if err := s.payments.UpdatePolicyPaymentValidation(ctx, *payment); err != nil {
		s.logUnexpected(ctx, err, "Failed to update policy payment validation", slog.String("payment_id", paymentID))
		return nil, err
	}
	return payment, nil
}

func (s *movementService) ListPolicyPayments(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error) {
	payments, err := s.payments.ListPolicyPaymentsByCashBox(ctx, cashBoxID, state)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list policy payments", slog.String("cash_box_id", cashBoxID))
		return nil, err
	}
	if payments == nil {
		return []domain.PolicyPayment{}, nil
	}
	return payments, nil
}

// ensureAcceptsMovements also guards validation: once a precuadre has snapshotted the
// approved totals they must not change until it is discarded.
func (s *movementService) ensureAcceptsMovements(ctx context.Context, cashBoxID string) error {
	box, err := s.boxes.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		return err
	}
	if !box.Status.AcceptsMovements() {
		return fmt.Errorf("%w: cash box %s is %s and accepts no changes to its entries", apperrors.ErrInvalidTransition, box.CashBoxID, box.Status)
	}
	return nil
}

// checkReferences requires a voucher above VoucherThreshold and a manager approval
// above ManagerApprovalThreshold.
func checkReferences(amount decimal.Decimal, voucher, managerApproval *string) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: monto must not be negative", apperrors.ErrValidation)
	}
	if amount.GreaterThan(domain.VoucherThreshold) && trimmed(voucher) == nil {
		return fmt.Errorf("%w: amounts above %s require a voucher reference", apperrors.ErrValidation, domain.VoucherThreshold)
	}
	if amount.GreaterThan(domain.ManagerApprovalThreshold) && trimmed(managerApproval) == nil {
		return fmt.Errorf("%w: amounts above %s require a manager approval reference", apperrors.ErrValidation, domain.ManagerApprovalThreshold)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
