package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) GetCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, kind, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}
func (m *MockReconciliationService) GetSummary(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*dto.CashBoxSummaryResponse, error) {
	args := m.Called(ctx, kind, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CashBoxSummaryResponse), args.Error(1)
}
func (m *MockReconciliationService) OpenCashBox(ctx context.Context, kind domain.CashBoxKind, req dto.OpenCashBoxRequest, actor domain.Actor) (*domain.CashBox, error) {
	args := m.Called(ctx, kind, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}
func (m *MockReconciliationService) CreatePrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CreatePrecuadreRequest, actor domain.Actor) (*domain.Precuadre, error) {
	args := m.Called(ctx, kind, cashBoxID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Precuadre), args.Error(1)
}
func (m *MockReconciliationService) DiscardPrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) error {
	args := m.Called(ctx, kind, cashBoxID, actor)
	return args.Error(0)
}
func (m *MockReconciliationService) SubmitCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.SubmitCuadreRequest, actor domain.Actor) (*dto.CuadreResponse, error) {
	args := m.Called(ctx, kind, cashBoxID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CuadreResponse), args.Error(1)
}
func (m *MockReconciliationService) CloseCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CashBox, error) {
	args := m.Called(ctx, kind, cashBoxID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock CancellationService ---
type MockCancellationService struct {
	mock.Mock
}

func (m *MockCancellationService) GenerateCuadreCode(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CancellationAuthorization, error) {
	args := m.Called(ctx, kind, cashBoxID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationAuthorization), args.Error(1)
}
func (m *MockCancellationService) GenerateCorteCode(ctx context.Context, corteID string, actor domain.Actor) (*domain.CancellationAuthorization, error) {
	args := m.Called(ctx, corteID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationAuthorization), args.Error(1)
}
func (m *MockCancellationService) CancelCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CancelRequest, actor domain.Actor) (*domain.Cuadre, error) {
	args := m.Called(ctx, kind, cashBoxID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cuadre), args.Error(1)
}
func (m *MockCancellationService) CancelCorte(ctx context.Context, corteID string, req dto.CancelRequest, actor domain.Actor) (*domain.UserCorte, error) {
	args := m.Called(ctx, corteID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCorte), args.Error(1)
}

var _ portssvc.CancellationSvcFacade = (*MockCancellationService)(nil)

// --- Mock MovementService ---
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actor domain.Actor) (*domain.Movement, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) ApproveMovement(ctx context.Context, movementID string, actor domain.Actor) (*domain.Movement, error) {
	args := m.Called(ctx, movementID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) RejectMovement(ctx context.Context, movementID, motive string, actor domain.Actor) (*domain.Movement, error) {
	args := m.Called(ctx, movementID, motive, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) ListMovements(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error) {
	args := m.Called(ctx, cashBoxID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}
func (m *MockMovementService) CreatePolicyPayment(ctx context.Context, req dto.CreatePolicyPaymentRequest, actor domain.Actor) (*domain.PolicyPayment, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyPayment), args.Error(1)
}
func (m *MockMovementService) ApprovePolicyPayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.PolicyPayment, error) {
	args := m.Called(ctx, paymentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyPayment), args.Error(1)
}
func (m *MockMovementService) RejectPolicyPayment(ctx context.Context, paymentID, motive string, actor domain.Actor) (*domain.PolicyPayment, error) {
	args := m.Called(ctx, paymentID, motive, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyPayment), args.Error(1)
}
func (m *MockMovementService) ListPolicyPayments(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error) {
	args := m.Called(ctx, cashBoxID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyPayment), args.Error(1)
}

var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Mock CorteService ---
type MockCorteService struct {
	mock.Mock
}

func (m *MockCorteService) CreateCorte(ctx context.Context, req dto.CreateCorteRequest, actor domain.Actor) (*domain.UserCorte, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCorte), args.Error(1)
}
func (m *MockCorteService) ValidateCorte(ctx context.Context, cashBoxID, usuario string, actor domain.Actor) (*domain.UserCorte, error) {
	args := m.Called(ctx, cashBoxID, usuario, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCorte), args.Error(1)
}
func (m *MockCorteService) ListCortes(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCorte), args.Error(1)
}

var _ portssvc.CorteSvcFacade = (*MockCorteService)(nil)
