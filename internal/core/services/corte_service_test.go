package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/core/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// --- Test Suite ---
type CorteServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	mocks   repoMocks
	service portssvc.CorteSvcFacade
}

func (suite *CorteServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mocks = newRepoMocks()
	suite.service = services.NewCorteService(suite.mocks.provider(), services.WithClock(fixedClock))
}

// --- Test Cases ---

func (suite *CorteServiceTestSuite) TestCreateCorte() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.mocks.cortes.On("FindCorteByUser", mock.Anything, "petty-1", cashier.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.cortes.On("SaveCorte", mock.Anything, mock.MatchedBy(func(c domain.UserCorte) bool {
		return c.Usuario == cashier.UserID && c.Status == domain.CortePending && c.TotalDeclarado.Equal(dec("1200.50"))
	})).Return(nil).Once()

	corte, err := suite.service.CreateCorte(suite.ctx, dto.CreateCorteRequest{
		CashBoxID:      "petty-1",
		TotalDeclarado: dec("1200.499"),
	}, cashier)

	suite.Require().NoError(err)
	suite.Equal(domain.CortePending, corte.Status)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *CorteServiceTestSuite) TestCreateCorte_OnePerUser() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusOpen), nil).Once()
	suite.mocks.cortes.On("FindCorteByUser", mock.Anything, "petty-1", cashier.UserID).Return(pendingCorte(), nil).Once()

	_, err := suite.service.CreateCorte(suite.ctx, dto.CreateCorteRequest{CashBoxID: "petty-1"}, cashier)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mocks.cortes.AssertNotCalled(suite.T(), "SaveCorte", mock.Anything, mock.Anything)
}

func (suite *CorteServiceTestSuite) TestCreateCorte_BoxNotOpen() {
	suite.mocks.boxes.On("FindCashBoxByID", mock.Anything, "petty-1").Return(pettyBox(domain.StatusPreBalance), nil).Once()

	_, err := suite.service.CreateCorte(suite.ctx, dto.CreateCorteRequest{CashBoxID: "petty-1"}, cashier)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *CorteServiceTestSuite) TestValidateCorte() {
	suite.mocks.cortes.On("FindCorteByUser", mock.Anything, "petty-1", cashier.UserID).Return(pendingCorte(), nil).Once()
	suite.mocks.cortes.On("UpdateCorte", mock.Anything, mock.MatchedBy(func(c domain.UserCorte) bool {
		return c.Status == domain.CorteValidated && c.ValidatedBy != nil && *c.ValidatedBy == supervisor.UserID
	}), domain.CortePending).Return(nil).Once()

	corte, err := suite.service.ValidateCorte(suite.ctx, "petty-1", cashier.UserID, supervisor)

	suite.Require().NoError(err)
	suite.Equal(domain.CorteValidated, corte.Status)
	suite.mocks.assertExpectations(suite.T())
}

func (suite *CorteServiceTestSuite) TestValidateCorte_OwnerCannotValidate() {
	_, err := suite.service.ValidateCorte(suite.ctx, "petty-1", supervisor.UserID, supervisor)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mocks.cortes.AssertNotCalled(suite.T(), "FindCorteByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CorteServiceTestSuite) TestValidateCorte_CashierRoleRejected() {
	_, err := suite.service.ValidateCorte(suite.ctx, "petty-1", "cajero-2", cashier)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CorteServiceTestSuite) TestValidateCorte_AlreadyValidated() {
	corte := pendingCorte()
	corte.Status = domain.CorteValidated
	suite.mocks.cortes.On("FindCorteByUser", mock.Anything, "petty-1", cashier.UserID).Return(corte, nil).Once()

	_, err := suite.service.ValidateCorte(suite.ctx, "petty-1", cashier.UserID, supervisor)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mocks.cortes.AssertNotCalled(suite.T(), "UpdateCorte", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CorteServiceTestSuite) TestListCortes_Empty() {
	suite.mocks.cortes.On("ListCortesByCashBox", mock.Anything, "petty-1").Return(nil, nil).Once()

	cortes, err := suite.service.ListCortes(suite.ctx, "petty-1")

	suite.Require().NoError(err)
	suite.NotNil(cortes)
	suite.Empty(cortes)
}

// --- Run Suite ---
func TestCorteService(t *testing.T) {
	suite.Run(t, new(CorteServiceTestSuite))
}
