package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
	"github.com/SscSPs/cuadre_caja_app/internal/utils"
)

// issueAttempts bounds retries when a freshly generated code collides with a live one.
const issueAttempts = 3

type cancellationService struct {
	BaseService
	boxes     portsrepo.CashBoxReader
	movements portsrepo.MovementReader
	recon     portsrepo.ReconciliationRepositoryFacade
	cortes    portsrepo.CorteRepositoryFacade
	codes     portsrepo.CancellationCodeStore
}

// NewCancellationService creates the service that issues and redeems cancellation codes.
func NewCancellationService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CancellationSvcFacade {
	return &cancellationService{
		BaseService: newBaseService(options...),
		boxes:       repos.CashBoxRepo,
		movements:   repos.MovementRepo,
		recon:       repos.ReconciliationRepo,
		cortes:      repos.CorteRepo,
		codes:       repos.CodeStore,
	}
}

var _ portssvc.CancellationSvcFacade = (*cancellationService)(nil)

func (s *cancellationService) GenerateCuadreCode(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CancellationAuthorization, error) {
	if err := requireIssuer(actor); err != nil {
		return nil, err
	}
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	if !box.Status.CanTransitionTo(domain.StatusCancelled) {
		return nil, invalidTransition(box, domain.StatusCancelled)
	}
	cuadre, err := s.recon.FindCuadreByCashBox(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, kind.CancellationScope(), cuadre.CuadreID, actor)
}

func (s *cancellationService) GenerateCorteCode(ctx context.Context, corteID string, actor domain.Actor) (*domain.CancellationAuthorization, error) {
	if err := requireIssuer(actor); err != nil {
		return nil, err
	}
	corte, err := s.cortes.FindCorteByID(ctx, corteID)
	if err != nil {
		return nil, err
	}
	if corte.Status == domain.CorteCancelled {
		return nil, fmt.Errorf("%w: corte %s is already cancelled", apperrors.ErrInvalidTransition, corte.CorteID)
	}
	return s.issue(ctx, domain.ScopeUserCorte, corte.CorteID, actor)
}

func (s *cancellationService) issue(ctx context.Context, scope domain.CancellationScope, targetID string, actor domain.Actor) (*domain.CancellationAuthorization, error) {
	for attempt := 1; ; attempt++ {
		code, err := utils.GenerateCode(s.codeLength)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to generate cancellation code", err)
		}
		now := s.now()
		auth := domain.CancellationAuthorization{
			Code:      code,
			Scope:     scope,
			TargetID:  targetID,
			IssuedBy:  actor.UserID,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.codeTTL),
		}
		err = s.codes.Issue(ctx, auth)
		if err == nil {
			s.LogInfo(ctx, "Cancellation code issued",
				slog.String("scope", string(scope)),
				slog.String("target_id", targetID),
				slog.Time("expires_at", auth.ExpiresAt))
			return &auth, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) || attempt == issueAttempts {
			s.logUnexpected(ctx, err, "Failed to store cancellation code", slog.String("target_id", targetID))
			return nil, err
		}
	}
}

func (s *cancellationService) CancelCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CancelRequest, actor domain.Actor) (*domain.Cuadre, error) {
	motive, err := checkMotive(req.Motivo)
	if err != nil {
		return nil, err
	}
	box, err := loadCashBox(ctx, s.boxes, kind, cashBoxID)
	if err != nil {
		return nil, err
	}
	if !box.Status.CanTransitionTo(domain.StatusCancelled) {
		return nil, invalidTransition(box, domain.StatusCancelled)
	}
	cuadre, err := s.recon.FindCuadreByCashBox(ctx, box.CashBoxID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTransferReversible(ctx, cuadre); err != nil {
		return nil, err
	}

	now := s.now()
	if _, err := s.codes.Consume(ctx, kind.CancellationScope(), cuadre.CuadreID, normalizeCode(req.Codigo), requester(req, actor), now); err != nil {
		s.GetLogger(ctx).Warn("Cancellation code rejected",
			slog.String("cash_box_id", box.CashBoxID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := cuadre.Cancel(actor.UserID, motive, now); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidTransition, err)
	}
	if err := s.recon.CancelCuadre(ctx, *cuadre); err != nil {
		s.logUnexpected(ctx, err, "Failed to cancel cuadre", slog.String("cuadre_id", cuadre.CuadreID))
		return nil, err
	}

	attrs := []any{slog.String("cash_box_id", box.CashBoxID), slog.String("cuadre_id", cuadre.CuadreID)}
	if cuadre.TransferMovementID != nil {
		attrs = append(attrs, slog.String("rejected_transfer_id", *cuadre.TransferMovementID))
	}
	s.LogInfo(ctx, "Cuadre cancelled", attrs...)
	return cuadre, nil
}

// ensureTransferReversible checks, before the code is spent, that the general box that
// received the cuadre's EntregaAGeneral is still open to take it back.
func (s *cancellationService) ensureTransferReversible(ctx context.Context, cuadre *domain.Cuadre) error {
	if cuadre.TransferMovementID == nil {
		return nil
	}
	transfer, err := s.movements.FindMovementByID(ctx, *cuadre.TransferMovementID)
	if err != nil {
		return err
	}
	general, err := s.boxes.FindCashBoxByID(ctx, transfer.CashBoxID)
	if err != nil {
		return err
	}
	if !general.Status.AcceptsMovements() {
		return fmt.Errorf("%w: general cash box %s is %s and cannot return transfer %s",
			apperrors.ErrInvalidTransition, general.CashBoxID, general.Status, transfer.MovementID)
	}
	return nil
}

func (s *cancellationService) CancelCorte(ctx context.Context, corteID string, req dto.CancelRequest, actor domain.Actor) (*domain.UserCorte, error) {
	motive, err := checkMotive(req.Motivo)
	if err != nil {
		return nil, err
	}
	corte, err := s.cortes.FindCorteByID(ctx, corteID)
	if err != nil {
		return nil, err
	}
	if corte.Status == domain.CorteCancelled {
		return nil, fmt.Errorf("%w: corte %s is already cancelled", apperrors.ErrInvalidTransition, corte.CorteID)
	}
	box, err := s.boxes.FindCashBoxByID(ctx, corte.CashBoxID)
	if err != nil {
		return nil, err
	}
	if box.Status != domain.StatusOpen && box.Status != domain.StatusPreBalance {
		return nil, fmt.Errorf("%w: cash box %s is %s", apperrors.ErrInvalidTransition, box.CashBoxID, box.Status)
	}

	now := s.now()
	if _, err := s.codes.Consume(ctx, domain.ScopeUserCorte, corte.CorteID, normalizeCode(req.Codigo), requester(req, actor), now); err != nil {
		s.GetLogger(ctx).Warn("Cancellation code rejected",
			slog.String("corte_id", corte.CorteID),
			slog.String("error", err.Error()))
		return nil, err
	}

	expected := corte.Status
	userID := actor.UserID
	corte.Status = domain.CorteCancelled
	corte.CancelledBy = &userID
	corte.CancelMotive = &motive
	corte.CancelledAt = &now
	corte.Touch(userID, now)
	if err := s.cortes.UpdateCorte(ctx, *corte, expected); err != nil {
		s.logUnexpected(ctx, err, "Failed to cancel corte", slog.String("corte_id", corte.CorteID))
		return nil, err
	}

	s.LogInfo(ctx, "Corte cancelled", slog.String("corte_id", corte.CorteID))
	return corte, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// requester is the user the code pair was handed to; it defaults to the caller.
func requester(req dto.CancelRequest, actor domain.Actor) string {
	if u := strings.TrimSpace(req.Usuario); u != "" {
		return u
	}
	return actor.UserID
}
