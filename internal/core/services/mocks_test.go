package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

// --- Mock CashBoxRepository ---
type MockCashBoxRepository struct {
	mock.Mock
}

func (m *MockCashBoxRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so services mutating the box do not leak into later calls.
	box := *args.Get(0).(*domain.CashBox)
	return &box, args.Error(1)
}

func (m *MockCashBoxRepository) FindActiveCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, businessDate time.Time) (*domain.CashBox, error) {
	args := m.Called(ctx, kind, branchID, businessDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockCashBoxRepository) FindLatestBalancedCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, before time.Time) (*domain.CashBox, error) {
	args := m.Called(ctx, kind, branchID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockCashBoxRepository) SaveCashBox(ctx context.Context, box domain.CashBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockCashBoxRepository) UpdateCashBoxStatus(ctx context.Context, cashBoxID string, from, to domain.CashBoxStatus, userID string, at time.Time) error {
	args := m.Called(ctx, cashBoxID, from, to, userID, at)
	return args.Error(0)
}

var _ portsrepo.CashBoxRepositoryFacade = (*MockCashBoxRepository)(nil)

// --- Mock MovementRepository ---
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	movement := *args.Get(0).(*domain.Movement)
	return &movement, args.Error(1)
}

func (m *MockMovementRepository) ListMovementsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.Movement, error) {
	args := m.Called(ctx, cashBoxID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovementValidation(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

// --- Mock PolicyPaymentRepository ---
type MockPolicyPaymentRepository struct {
	mock.Mock
}

func (m *MockPolicyPaymentRepository) FindPolicyPaymentByID(ctx context.Context, paymentID string) (*domain.PolicyPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	payment := *args.Get(0).(*domain.PolicyPayment)
	return &payment, args.Error(1)
}

func (m *MockPolicyPaymentRepository) ListPolicyPaymentsByCashBox(ctx context.Context, cashBoxID string, state *domain.ValidationState) ([]domain.PolicyPayment, error) {
	args := m.Called(ctx, cashBoxID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PolicyPayment), args.Error(1)
}

func (m *MockPolicyPaymentRepository) SavePolicyPayment(ctx context.Context, payment domain.PolicyPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPolicyPaymentRepository) UpdatePolicyPaymentValidation(ctx context.Context, payment domain.PolicyPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

var _ portsrepo.PolicyPaymentRepositoryFacade = (*MockPolicyPaymentRepository)(nil)

// --- Mock CorteRepository ---
type MockCorteRepository struct {
	mock.Mock
}

func (m *MockCorteRepository) FindCorteByID(ctx context.Context, corteID string) (*domain.UserCorte, error) {
	args := m.Called(ctx, corteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	corte := *args.Get(0).(*domain.UserCorte)
	return &corte, args.Error(1)
}

func (m *MockCorteRepository) FindCorteByUser(ctx context.Context, cashBoxID, usuario string) (*domain.UserCorte, error) {
	args := m.Called(ctx, cashBoxID, usuario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	corte := *args.Get(0).(*domain.UserCorte)
	return &corte, args.Error(1)
}

func (m *MockCorteRepository) ListCortesByCashBox(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCorte), args.Error(1)
}

func (m *MockCorteRepository) CountPendingCortes(ctx context.Context, cashBoxID string) (int, error) {
	args := m.Called(ctx, cashBoxID)
	return args.Int(0), args.Error(1)
}

func (m *MockCorteRepository) SaveCorte(ctx context.Context, corte domain.UserCorte) error {
	args := m.Called(ctx, corte)
	return args.Error(0)
}

func (m *MockCorteRepository) UpdateCorte(ctx context.Context, corte domain.UserCorte, expected domain.CorteStatus) error {
	args := m.Called(ctx, corte, expected)
	return args.Error(0)
}

var _ portsrepo.CorteRepositoryFacade = (*MockCorteRepository)(nil)

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) FindPrecuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Precuadre, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Precuadre), args.Error(1)
}

func (m *MockReconciliationRepository) FindCuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Cuadre, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	cuadre := *args.Get(0).(*domain.Cuadre)
	return &cuadre, args.Error(1)
}

func (m *MockReconciliationRepository) SavePrecuadre(ctx context.Context, precuadre domain.Precuadre) error {
	args := m.Called(ctx, precuadre)
	return args.Error(0)
}

func (m *MockReconciliationRepository) DiscardPrecuadre(ctx context.Context, cashBoxID string, userID string, at time.Time) error {
	args := m.Called(ctx, cashBoxID, userID, at)
	return args.Error(0)
}

func (m *MockReconciliationRepository) SaveCuadre(ctx context.Context, cuadre domain.Cuadre, transfer *domain.Movement) error {
	args := m.Called(ctx, cuadre, transfer)
	return args.Error(0)
}

func (m *MockReconciliationRepository) CancelCuadre(ctx context.Context, cuadre domain.Cuadre) error {
	args := m.Called(ctx, cuadre)
	return args.Error(0)
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

// --- Mock CancellationCodeStore ---
type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) Issue(ctx context.Context, auth domain.CancellationAuthorization) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}

func (m *MockCodeStore) Consume(ctx context.Context, scope domain.CancellationScope, targetID, code, usuario string, now time.Time) (*domain.CancellationAuthorization, error) {
	args := m.Called(ctx, scope, targetID, code, usuario, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationAuthorization), args.Error(1)
}

var _ portsrepo.CancellationCodeStore = (*MockCodeStore)(nil)

// repoMocks bundles every repository mock behind a RepositoryProvider.
type repoMocks struct {
	boxes     *MockCashBoxRepository
	movements *MockMovementRepository
	payments  *MockPolicyPaymentRepository
	cortes    *MockCorteRepository
	recon     *MockReconciliationRepository
	codes     *MockCodeStore
}

func newRepoMocks() repoMocks {
	return repoMocks{
		boxes:     new(MockCashBoxRepository),
		movements: new(MockMovementRepository),
		payments:  new(MockPolicyPaymentRepository),
		cortes:    new(MockCorteRepository),
		recon:     new(MockReconciliationRepository),
		codes:     new(MockCodeStore),
	}
}

func (r repoMocks) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CashBoxRepo:        r.boxes,
		MovementRepo:       r.movements,
		PolicyPaymentRepo:  r.payments,
		CorteRepo:          r.cortes,
		ReconciliationRepo: r.recon,
		CodeStore:          r.codes,
	}
}

func (r repoMocks) assertExpectations(t mock.TestingT) {
	r.boxes.AssertExpectations(t)
	r.movements.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.cortes.AssertExpectations(t)
	r.recon.AssertExpectations(t)
	r.codes.AssertExpectations(t)
}
