package services

import (
	"context"
	"errors"
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
	"github.com/SscSPs/cuadre_caja_app/internal/utils/accounting"
)

// reconciliationService drives cash boxes through ABIERTA -> PRECUADRE -> CUADRADA -> CERRADA.
type reconciliationService struct {
	BaseService
	boxes     portsrepo.CashBoxRepositoryFacade
	movements portsrepo.MovementReader
	payments  portsrepo.PolicyPaymentReader
	cortes    portsrepo.CorteReader
	recon     portsrepo.ReconciliationRepositoryFacade
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: newBaseService(options...),
		boxes:       repos.CashBoxRepo,
		movements:   repos.MovementRepo,
		payments:    repos.PolicyPaymentRepo,
		cortes:      repos.CorteRepo,
		recon:       repos.ReconciliationRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) OpenCashBox(ctx context.Context, kind domain.CashBoxKind, req dto.OpenCashBoxRequest, actor domain.Actor) (*domain.CashBox, error) {
	now := s.now()
	day := businessDay(now)
	if req.BusinessDate != nil {
		day = businessDay(*req.BusinessDate)
	}
	if req.FondoFijo.IsNegative() {
		return nil, fmt.Errorf("%w: fondoFijo must not be negative", apperrors.ErrValidation)
	}

	existing, err := s.boxes.FindActiveCashBox(ctx, kind, req.BranchID, day)
	if err == nil {
		return nil, fmt.Errorf("%w: %s %s is already open for branch %s on %s", apperrors.ErrDuplicate, kind, existing.CashBoxID, req.BranchID, day.Format("2006-01-02"))
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logUnexpected(ctx, err, "Failed to look up active cash box", slog.String("branch_id", req.BranchID))
		return nil, err
	}

	fondo := domain.Money(req.FondoFijo)
	opening := fondo
	previous, err := s.boxes.FindLatestBalancedCashBox(ctx, kind, req.BranchID, day)
	switch {
	case err == nil:
		opening = domain.Money(previous.SaldoFinal)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.logUnexpected(ctx, err, "Failed to look up previous cash box", slog.String("branch_id", req.BranchID))
		return nil, err
	}

	responsable := strings.TrimSpace(req.Responsable)
	if responsable == "" {
		responsable = actor.UserID
	}

	box := domain.CashBox{
		CashBoxID:    uuid.NewString(),
		Kind:         kind,
		BranchID:     req.BranchID,
		BusinessDate: day,
		SaldoInicial: opening,
		SaldoFinal:   opening,
		FondoFijo:    fondo,
		Responsable:  responsable,
		Status:       domain.StatusOpen,
		AuditFields:  domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.boxes.SaveCashBox(ctx, box); err != nil {
		s.logUnexpected(ctx, err, "Failed to save cash box", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash box opened",
		slog.String("cash_box_id", box.CashBoxID),
		slog.String("kind", string(kind)),
		slog.String("saldo_inicial", opening.StringFixed(domain.MoneyPlaces)))
	return &box, nil
}

func (s *reconciliationService) GetCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*domain.CashBox, error) {
	return loadCashBox(ctx, s.boxes, kind, cashBoxID)
}

func (s *reconciliationService) GetSummary(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*dto.CashBoxSummaryResponse, error) {
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	totals, err := s.totals(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}
	pending, err := s.cortes.CountPendingCortes(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}

	depositos := decimal.Zero
	if cuadre, err := s.recon.FindCuadreByCashBox(ctx, box.CashBoxID); err == nil {
		if cuadre.Status != domain.CuadreCancelled {
			depositos = cuadre.TotalDepositosBanco
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	result := accounting.CalculateBalance(totals.Input(*box, depositos), s.tolerance)
	return &dto.CashBoxSummaryResponse{
		CashBox:         *box,
		Totals:          totals,
		SaldoDisponible: result.SaldoDisponible,
		EntregaAGeneral: result.EntregaAGeneral,
		SaldoFinal:      result.SaldoFinal,
		Diferencia:      result.Diferencia,
		Cuadrado:        result.Cuadrado,
		PendingCortes:   pending,
	}, nil
}

func (s *reconciliationService) CreatePrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CreatePrecuadreRequest, actor domain.Actor) (*domain.Precuadre, error) {
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	if !box.Status.CanTransitionTo(domain.StatusPreBalance) {
		return nil, invalidTransition(box, domain.StatusPreBalance)
	}
	if err := s.ensureNoPendingCortes(ctx, box.CashBoxID); err != nil {
		return nil, err
	}
	if req.EfectivoContado.IsNegative() || req.TotalVouchers.IsNegative() {
		return nil, fmt.Errorf("%w: counted amounts must not be negative", apperrors.ErrValidation)
	}

	totals, err := s.totals(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}
	expected := accounting.CalculateBalance(totals.Input(*box, decimal.Zero), s.tolerance).SaldoDisponible
	counted := domain.Money(req.EfectivoContado.Add(req.TotalVouchers))
	diferencia := counted.Sub(expected)

	observaciones := strings.TrimSpace(req.Observaciones)
	if !accounting.WithinTolerance(counted, expected, s.tolerance) && observaciones == "" {
		return nil, fmt.Errorf("%w: observaciones are required when the count differs by %s", apperrors.ErrValidation, diferencia.StringFixed(domain.MoneyPlaces))
	}

	now := s.now()
	precuadre := domain.Precuadre{
		PrecuadreID:     uuid.NewString(),
		CashBoxID:       box.CashBoxID,
		SaldoEsperado:   expected,
		EfectivoContado: domain.Money(req.EfectivoContado),
		TotalVouchers:   domain.Money(req.TotalVouchers),
		Diferencia:      diferencia,
		Observaciones:   observaciones,
		AuditFields:     domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.recon.SavePrecuadre(ctx, precuadre); err != nil {
		s.logUnexpected(ctx, err, "Failed to save precuadre", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}

	s.LogInfo(ctx, "Precuadre recorded",
		slog.String("cash_box_id", box.CashBoxID),
		slog.String("diferencia", diferencia.StringFixed(domain.MoneyPlaces)))
	return &precuadre, nil
}

func (s *reconciliationService) DiscardPrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) error {
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return err
	}
	if box.Status != domain.StatusPreBalance {
		return invalidTransition(box, domain.StatusOpen)
	}
	if err := s.recon.DiscardPrecuadre(ctx, box.CashBoxID, actor.UserID, s.now()); err != nil {
		s.logUnexpected(ctx, err, "Failed to discard precuadre", slog.String("cash_box_id", box.CashBoxID))
		return err
	}
	s.LogInfo(ctx, "Precuadre discarded", slog.String("cash_box_id", box.CashBoxID))
	return nil
}

func (s *reconciliationService) SubmitCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.SubmitCuadreRequest, actor domain.Actor) (*dto.CuadreResponse, error) {
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	if !box.Status.CanTransitionTo(domain.StatusBalanced) {
		return nil, invalidTransition(box, domain.StatusBalanced)
	}
	if err := s.ensureNoPendingCortes(ctx, box.CashBoxID); err != nil {
		return nil, err
	}

	precuadre, err := s.recon.FindPrecuadreByCashBox(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}

	deposits := req.ToDomainDeposits()
	depositos, err := accounting.SumDeposits(deposits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	totals, err := s.totals(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}
	input := totals.Input(*box, depositos)
	if err := accounting.ValidateInput(input); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	result := accounting.CalculateBalance(input, s.tolerance)

	now := s.now()
	cuadre := domain.Cuadre{
		CuadreID:                uuid.NewString(),
		CashBoxID:               box.CashBoxID,
		PrecuadreID:             precuadre.PrecuadreID,
		FondoFijo:               domain.Money(box.FondoFijo),
		SaldoInicial:            domain.Money(input.Opening()),
		TotalEfectivo:           domain.Money(totals.Efectivo),
		TotalTarjeta:            domain.Money(totals.Tarjeta),
		TotalTransferencia:      domain.Money(totals.Transferencia),
		TotalDepositoVentanilla: domain.Money(totals.DepositoVentanilla),
		TotalEgresos:            domain.Money(totals.Egresos),
		TotalDepositosBanco:     domain.Money(depositos),
		SaldoDisponible:         result.SaldoDisponible,
		EntregaAGeneral:         result.EntregaAGeneral,
		SaldoFinal:              result.SaldoFinal,
		Diferencia:              result.Diferencia,
		Deposits:                deposits,
		Observaciones:           strings.TrimSpace(req.Observaciones),
		Status:                  accounting.CuadreStatusFor(result),
		AuditFields:             domain.NewAuditFields(actor.UserID, now),
	}

	var transfer *domain.Movement
	if box.Kind == domain.PettyCash && result.EntregaAGeneral.IsPositive() {
		transfer, err = s.transferToGeneral(ctx, box, result.EntregaAGeneral, actor, now)
		if err != nil {
			return nil, err
		}
		cuadre.TransferMovementID = &transfer.MovementID
	}

	if err := s.recon.SaveCuadre(ctx, cuadre, transfer); err != nil {
		s.logUnexpected(ctx, err, "Failed to save cuadre", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}

	resp := &dto.CuadreResponse{
		Cuadre:           cuadre,
		DeclaredMismatch: declaredMismatch(req.Declared, totals, s.tolerance),
	}
	if transfer != nil {
		resp.TransferMovementID = &transfer.MovementID
	}
	if len(resp.DeclaredMismatch) > 0 {
		s.GetLogger(ctx).Warn("Declared totals differ from recorded movements",
			slog.String("cash_box_id", box.CashBoxID),
			slog.Any("fields", resp.DeclaredMismatch))
	}

	s.LogInfo(ctx, "Cuadre recorded",
		slog.String("cash_box_id", box.CashBoxID),
		slog.String("cuadre_id", cuadre.CuadreID),
		slog.String("status", string(cuadre.Status)),
		slog.String("entrega_a_general", cuadre.EntregaAGeneral.StringFixed(domain.MoneyPlaces)))
	return resp, nil
}

func (s *reconciliationService) CloseCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CashBox, error) {
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	from := box.Status
	now := s.now()
	if err := box.Transition(domain.StatusClosed, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidTransition, err)
	}
	if err := s.boxes.UpdateCashBoxStatus(ctx, box.CashBoxID, from, domain.StatusClosed, actor.UserID, now); err != nil {
		s.logUnexpected(ctx, err, "Failed to close cash box", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}
	s.LogInfo(ctx, "Cash box closed", slog.String("cash_box_id", box.CashBoxID))
	return box, nil
}

// transferToGeneral builds the approved cash income that moves the surplus of a petty
// box into the open general box of the same branch and day.
func (s *reconciliationService) transferToGeneral(ctx context.Context, box *domain.CashBox, amount decimal.Decimal, actor domain.Actor, now time.Time) (*domain.Movement, error) {
	general, err := s.boxes.FindActiveCashBox(ctx, domain.GeneralCash, box.BranchID, box.BusinessDate)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: no open general cash box for branch %s to receive %s", apperrors.ErrValidation, box.BranchID, amount.StringFixed(domain.MoneyPlaces))
	}
	if err != nil {
		return nil, err
	}
	if !general.Status.AcceptsMovements() {
		return nil, fmt.Errorf("%w: general cash box %s is %s", apperrors.ErrInvalidTransition, general.CashBoxID, general.Status)
	}

	userID := actor.UserID
	validatedAt := now
	return &domain.Movement{
		MovementID:  uuid.NewString(),
		CashBoxID:   general.CashBoxID,
		Type:        domain.MovementIncome,
		Method:      domain.MethodCash,
		Amount:      amount,
		Concept:     fmt.Sprintf("Entrega de caja chica %s", box.CashBoxID),
		Validado:    domain.ValidationApproved,
		ValidatedBy: &userID,
		ValidatedAt: &validatedAt,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}, nil
}

func (s *reconciliationService) ensureNoPendingCortes(ctx context.Context, cashBoxID string) error {
	pending, err := s.cortes.CountPendingCortes(ctx, cashBoxID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%w: %d pending", apperrors.ErrBlockedByPendingUsers, pending)
	}
	return nil
}

func (s *reconciliationService) totals(ctx context.Context, cashBoxID string) (accounting.Totals, error) {
	movements, err := s.movements.ListMovementsByCashBox(ctx, cashBoxID, nil)
	if err != nil {
		return accounting.Totals{}, err
	}
	payments, err := s.payments.ListPolicyPaymentsByCashBox(ctx, cashBoxID, nil)
	if err != nil {
		return accounting.Totals{}, err
	}
	totals, err := accounting.SumTotals(movements, payments)
	if err != nil {
		return accounting.Totals{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return totals, nil
}

// loadCashBox fetches a box and hides boxes of the other kind.
func loadCashBox(ctx context.Context, boxes portsrepo.CashBoxReader, kind domain.CashBoxKind, cashBoxID string) (*domain.CashBox, error) {
	box, err := boxes.FindCashBoxByID(ctx, cashBoxID)
	if err != nil {
		return nil, err
	}
	if box.Kind != kind {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, cashBoxID)
	}
	return box, nil
}

// declaredMismatch lists the client totals that differ from the recorded ones.
func declaredMismatch(declared *dto.DeclaredTotals, totals accounting.Totals, tolerance decimal.Decimal) []string {
	if declared == nil {
		return nil
	}
	pairs := []struct {
		name     string
		declared decimal.Decimal
		actual   decimal.Decimal
	}{
		{"totalEfectivo", declared.TotalEfectivo, totals.Efectivo},
		{"totalTarjeta", declared.TotalTarjeta, totals.Tarjeta},
		{"totalTransferencia", declared.TotalTransferencia, totals.Transferencia},
		{"totalDepositoVentanilla", declared.TotalDepositoVentanilla, totals.DepositoVentanilla},
		{"totalEgresos", declared.TotalEgresos, totals.Egresos},
	}
	var mismatched []string
	for _, p := range pairs {
		if !accounting.WithinTolerance(p.declared, p.actual, tolerance) {
			mismatched = append(mismatched, p.name)
		}
	}
	return mismatched
}
