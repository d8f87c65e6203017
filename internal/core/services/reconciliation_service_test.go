package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/core/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

var fixedNow = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	cashier    = domain.Actor{UserID: "cajero-1", Role: domain.RoleCashier}
	supervisor = domain.Actor{UserID: "super-1", Role: domain.RoleSupervisor}
	manager    = domain.Actor{UserID: "gerente-1", Role: domain.RoleManager}
)

func pettyBox(status domain.CashBoxStatus) *domain.CashBox {
	return &domain.CashBox{
		CashBoxID:    "petty-1",
		Kind:         domain.PettyCash,
		BranchID:     "SUC-01",
		BusinessDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		SaldoInicial: dec("5000"),
		SaldoFinal:   dec("5000"),
		FondoFijo:    dec("5000"),
		Responsable:  cashier.UserID,
		Status:       status,
		AuditFields:  domain.NewAuditFields(cashier.UserID, fixedNow.Add(-8*time.Hour)),
	}
}

func generalBox(status domain.CashBoxStatus) *domain.CashBox {
	box := pettyBox(status)
	box.CashBoxID = "general-1"
	box.Kind = domain.GeneralCash
	box.FondoFijo = dec("20000")
	box.SaldoInicial = dec("20000")
	return box
}

func approvedMovement(id string, t domain.MovementType, m domain.PaymentMethod, amount string) domain.Movement {
	return domain.Movement{
		MovementID: id,
		CashBoxID:  "petty-1",
		Type:       t,
		Method:     m,
		Amount:     dec(amount),
		Validado:   domain.ValidationApproved,
	}
}

// dayMovements are the approved entries of a typical branch day.
func dayMovements(egresos string) ([]domain.Movement, []domain.PolicyPayment) {
	movements := []domain.Movement{
		approvedMovement("m1", domain.MovementIncome, domain.MethodCash, "12500"),
		approvedMovement("m2", domain.MovementIncome, domain.MethodCard, "8300"),
		approvedMovement("m3", domain.MovementIncome, domain.MethodTransfer, "4200"),
		approvedMovement("m4", domain.MovementExpense, domain.MethodCash, egresos),
	}
	payments := []domain.PolicyPayment{
		{PaymentID: "p1", CashBoxID: "petty-1", Method: domain.MethodDeposit, Amount: dec("1500"), Validado: domain.ValidationApproved},
	}
	return movements, payments
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	mocks   repoMocks
	service portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mocks = newRepoMocks()
	suite.service = services.NewReconciliationService(suite.mocks.provider(), services.WithClock(fixedClock))
}

func (suite *ReconciliationServiceTestSuite) expectDay(egresos string) {
	movements, payments := dayMovements(egresos)
	suite.mocks.movements.On("ListMovementsByCashBox", mock.Anything, "petty-1", mock.Anything).Return(movements, nil).Once()
	suite.mocks.payments.On("ListPolicyPaymentsByCashBox", mock.Anything, "petty-1", mock.Anything).Return(payments, nil).Once()
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestOpenCashBox_SeedsFromPreviousFinalBalance() {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	previous := pettyBox(domain.StatusClosed)
	previous.SaldoFinal = dec("4875.25")

	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.PettyCash, "SUC-01", day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.boxes.On("FindLatestBalancedCashBox", mock.Anything, domain.PettyCash, "SUC-01", day).Return(previous, nil).Once()
	suite.mocks.boxes.On("SaveCashBox", mock.Anything, mock.MatchedBy(func(b domain.CashBox) bool {
		return b.Status == domain.StatusOpen &&
			b.SaldoInicial.Equal(dec("4875.25")) &&
			b.FondoFijo.Equal(dec("5000")) &&
			b.Responsable == cashier.UserID &&
			b.BusinessDate.Equal(day)
	})).Return(nil).Once()

	box, err := suite.service.OpenCashBox(suite.ctx, domain.PettyCash, dto.OpenCashBoxRequest{
		BranchID:  "SUC-01",
		FondoFijo: dec("5000"),
	}, cashier)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOpen, box.Status)
	suite.True(box.SaldoInicial.Equal(dec("4875.25")))
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestOpenCashBox_FirstBoxUsesFixedFund() {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.boxes.On("FindLatestBalancedCashBox", mock.Anything, domain.GeneralCash, "SUC-01", day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.boxes.On("SaveCashBox", mock.Anything, mock.AnythingOfType("domain.CashBox")).Return(nil).Once()

	box, err := suite.service.OpenCashBox(suite.ctx, domain.GeneralCash, dto.OpenCashBoxRequest{
		BranchID:    "SUC-01",
		FondoFijo:   dec("20000"),
		Responsable: "tesorero",
	}, manager)

	suite.Require().NoError(err)
	suite.True(box.SaldoInicial.Equal(dec("20000")))
	suite.Equal("tesorero", box.Responsable)
	suite.Equal(domain.GeneralCash, box.Kind)
}

func (suite *ReconciliationServiceTestSuite) TestOpenCashBox_AlreadyOpen() {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.PettyCash, "SUC-01", day).Return(pettyBox(domain.StatusOpen), nil).Once()

	box, err := suite.service.OpenCashBox(suite.ctx, domain.PettyCash, dto.OpenCashBoxRequest{BranchID: "SUC-01", FondoFijo: dec("5000")}, cashier)

	suite.Nil(box)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mocks.boxes.AssertNotCalled(suite.T(), "SaveCashBox", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestGetCashBox_OtherKindIsHidden() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "general-1").Return(generalBox(domain.StatusOpen), nil).Once()

	box, err := suite.service.GetCashBox(suite.ctx, domain.PettyCash, "general-1")

	suite.Nil(box)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestGetSummary() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.expectDay("780.50")
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(1, nil).Once()
	suite.mocks.recon.On("FindCuadreByCashBox", mock.Anything, "petty-1").Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.GetSummary(suite.ctx, domain.PettyCash, "petty-1")

	suite.Require().NoError(err)
	suite.True(summary.SaldoDisponible.Equal(dec("30719.50")), summary.SaldoDisponible.String())
	suite.True(summary.EntregaAGeneral.Equal(dec("25719.50")))
	suite.True(summary.SaldoFinal.Equal(dec("5000")))
	suite.True(summary.Cuadrado)
	suite.Equal(1, summary.PendingCortes)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreatePrecuadre_BlockedByPendingCortes() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(2, nil).Once()

	precuadre, err := suite.service.CreatePrecuadre(suite.ctx, domain.PettyCash, "petty-1", dto.CreatePrecuadreRequest{
		EfectivoContado: dec("30719.50"),
	}, cashier)

	suite.Nil(precuadre)
	suite.ErrorIs(err, apperrors.ErrBlockedByPendingUsers)
	suite.Contains(err.Error(), "2 pending")
	suite.mocks.recon.AssertNotCalled(suite.T(), "SavePrecuadre", mock.Anything, mock.Anything)
	suite.mocks.boxes.AssertNotCalled(suite.T(), "UpdateCashBoxStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestCreatePrecuadre_Success() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(0, nil).Once()
	suite.expectDay("780.50")
	suite.mocks.recon.On("SavePrecuadre", mock.Anything, mock.MatchedBy(func(p domain.Precuadre) bool {
		return p.CashBoxID == "petty-1" &&
			p.SaldoEsperado.Equal(dec("30719.50")) &&
			p.Diferencia.IsZero() &&
			!p.Locked &&
			p.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	precuadre, err := suite.service.CreatePrecuadre(suite.ctx, domain.PettyCash, "petty-1", dto.CreatePrecuadreRequest{
		EfectivoContado: dec("18219.50"),
		TotalVouchers:   dec("12500"),
	}, cashier)

	suite.Require().NoError(err)
	suite.True(precuadre.Diferencia.IsZero())
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreatePrecuadre_DifferenceNeedsObservaciones() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(0, nil).Once()
	suite.expectDay("780.50")

	precuadre, err := suite.service.CreatePrecuadre(suite.ctx, domain.PettyCash, "petty-1", dto.CreatePrecuadreRequest{
		EfectivoContado: dec("30000"),
	}, cashier)

	suite.Nil(precuadre)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mocks.recon.AssertNotCalled(suite.T(), "SavePrecuadre", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestCreatePrecuadre_WrongState() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusBalanced), nil).Once()

	_, err := suite.service.CreatePrecuadre(suite.ctx, domain.PettyCash, "petty-1", dto.CreatePrecuadreRequest{}, cashier)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mocks.cortes.AssertNotCalled(suite.T(), "CountPendingCortes", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestDiscardPrecuadre() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusPreBalance), nil).Once()
	suite.mocks.recon.On("DiscardPrecuadre", mock.Anything, "petty-1", cashier.UserID, fixedNow).Return(nil).Once()

	err := suite.service.DiscardPrecuadre(suite.ctx, domain.PettyCash, "petty-1", cashier)

	suite.Require().NoError(err)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestDiscardPrecuadre_NotInPrecuadre() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()

	err := suite.service.DiscardPrecuadre(suite.ctx, domain.PettyCash, "petty-1", cashier)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mocks.recon.AssertNotCalled(suite.T(), "DiscardPrecuadre", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_BlockedByPendingCortes() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusPreBalance), nil).Once()
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(2, nil).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrBlockedByPendingUsers)
	suite.mocks.recon.AssertNotCalled(suite.T(), "FindPrecuadreByCashBox", mock.Anything, mock.Anything)
	suite.mocks.recon.AssertNotCalled(suite.T(), "SaveCuadre", mock.Anything, mock.Anything, mock.Anything)
	suite.mocks.boxes.AssertNotCalled(suite.T(), "UpdateCashBoxStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_PendingCorteRaceRollsBack() {
	suite.expectSubmit("780.50")
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", pettyBox(domain.StatusOpen).BusinessDate).
		Return(generalBox(domain.StatusOpen), nil).Once()
	suite.mocks.recon.On("SaveCuadre", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: 1 pending", apperrors.ErrBlockedByPendingUsers)).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrBlockedByPendingUsers)
}

func (suite *ReconciliationServiceTestSuite) expectSubmit(egresos string) {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusPreBalance), nil).Once()
	suite.mocks.cortes.On("CountPendingCortes", mock.Anything, "petty-1").Return(0, nil).Once()
	suite.mocks.recon.On("FindPrecuadreByCashBox", mock.Anything, "petty-1").Return(&domain.Precuadre{PrecuadreID: "pre-1", CashBoxID: "petty-1"}, nil).Once()
	suite.expectDay(egresos)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_BalancedHandsSurplusToGeneral() {
	suite.expectSubmit("780.50")
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", pettyBox(domain.StatusOpen).BusinessDate).
		Return(generalBox(domain.StatusOpen), nil).Once()
	suite.mocks.recon.On("SaveCuadre", mock.Anything,
		mock.MatchedBy(func(c domain.Cuadre) bool {
			return c.Status == domain.CuadreBalanced &&
				c.PrecuadreID == "pre-1" &&
				c.SaldoDisponible.Equal(dec("30719.50")) &&
				c.EntregaAGeneral.Equal(dec("25719.50")) &&
				c.SaldoFinal.Equal(dec("5000")) &&
				c.Diferencia.IsZero() &&
				c.TransferMovementID != nil
		}),
		mock.MatchedBy(func(m *domain.Movement) bool {
			return m != nil &&
				m.CashBoxID == "general-1" &&
				m.Type == domain.MovementIncome &&
				m.Method == domain.MethodCash &&
				m.Validado == domain.ValidationApproved &&
				m.Amount.Equal(dec("25719.50"))
		}),
	).Return(nil).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Require().NoError(err)
	suite.Equal(domain.CuadreBalanced, resp.Cuadre.Status)
	suite.Require().NotNil(resp.TransferMovementID)
	suite.Require().NotNil(resp.Cuadre.TransferMovementID)
	suite.Equal(*resp.TransferMovementID, *resp.Cuadre.TransferMovementID)
	suite.Empty(resp.DeclaredMismatch)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_ShortfallRecordsDifference() {
	suite.expectSubmit("30280.50")
	suite.mocks.recon.On("SaveCuadre", mock.Anything,
		mock.MatchedBy(func(c domain.Cuadre) bool {
			return c.Status == domain.CuadreWithDifference &&
				c.SaldoDisponible.Equal(dec("1219.50")) &&
				c.EntregaAGeneral.IsZero() &&
				c.SaldoFinal.Equal(dec("1219.50")) &&
				c.Diferencia.Equal(dec("3780.50")) &&
				c.TransferMovementID == nil
		}),
		(*domain.Movement)(nil),
	).Return(nil).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Require().NoError(err)
	suite.Equal(domain.CuadreWithDifference, resp.Cuadre.Status)
	suite.Nil(resp.TransferMovementID)
	suite.mocks.boxes.AssertNotCalled(suite.T(), "FindActiveCashBox", mock.Anything, domain.GeneralCash, mock.Anything, mock.Anything)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_ReportsDeclaredMismatch() {
	suite.expectSubmit("30280.50")
	suite.mocks.recon.On("SaveCuadre", mock.Anything, mock.AnythingOfType("domain.Cuadre"), (*domain.Movement)(nil)).Return(nil).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{
		Declared: &dto.DeclaredTotals{
			TotalEfectivo:           dec("12500"),
			TotalTarjeta:            dec("8000"),
			TotalTransferencia:      dec("4200"),
			TotalDepositoVentanilla: dec("1500"),
			TotalEgresos:            dec("30280.50"),
		},
	}, cashier)

	suite.Require().NoError(err)
	suite.Equal([]string{"totalTarjeta"}, resp.DeclaredMismatch)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_NoOpenGeneralBox() {
	suite.expectSubmit("780.50")
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mocks.recon.AssertNotCalled(suite.T(), "SaveCuadre", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_GeneralBoxNotOpen() {
	suite.expectSubmit("780.50")
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", mock.Anything).Return(generalBox(domain.StatusPreBalance), nil).Once()

	_, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mocks.recon.AssertNotCalled(suite.T(), "SaveCuadre", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_BankDepositsReduceAvailable() {
	suite.expectSubmit("780.50")
	suite.mocks.boxes.On("FindActiveCashBox", mock.Anything, domain.GeneralCash, "SUC-01", mock.Anything).Return(generalBox(domain.StatusOpen), nil).Once()
	suite.mocks.recon.On("SaveCuadre", mock.Anything,
		mock.MatchedBy(func(c domain.Cuadre) bool {
			return c.TotalDepositosBanco.Equal(dec("20000")) &&
				c.SaldoDisponible.Equal(dec("10719.50")) &&
				c.EntregaAGeneral.Equal(dec("5719.50")) &&
				len(c.Deposits) == 1
		}),
		mock.AnythingOfType("*domain.Movement"),
	).Return(nil).Once()

	_, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{
		Depositos: []dto.BankDepositRequest{{BankAccountID: "BANCO-1", Amount: dec("20000"), Reference: "DEP-77"}},
	}, cashier)

	suite.Require().NoError(err)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_RequiresPrecuadreState() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()

	_, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *ReconciliationServiceTestSuite) TestSubmitCuadre_RepoConflictIsReturned() {
	suite.expectSubmit("30280.50")
	suite.mocks.recon.On("SaveCuadre", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	resp, err := suite.service.SubmitCuadre(suite.ctx, domain.PettyCash, "petty-1", dto.SubmitCuadreRequest{}, cashier)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReconciliationServiceTestSuite) TestCloseCashBox() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusBalanced), nil).Once()
	suite.mocks.boxes.On("UpdateCashBoxStatus", mock.Anything, "petty-1", domain.StatusBalanced, domain.StatusClosed, cashier.UserID, fixedNow).Return(nil).Once()

	box, err := suite.service.CloseCashBox(suite.ctx, domain.PettyCash, "petty-1", cashier)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusClosed, box.Status)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCloseCashBox_InvalidTransitions() {
	for _, status := range []domain.CashBoxStatus{domain.StatusOpen, domain.StatusPreBalance, domain.StatusClosed, domain.StatusCancelled} {
		suite.Run(string(status), func() {
			suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(status), nil).Once()

			_, err := suite.service.CloseCashBox(suite.ctx, domain.PettyCash, "petty-1", cashier)

			assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTransition)
		})
	}
	suite.mocks.boxes.AssertNotCalled(suite.T(), "UpdateCashBoxStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
