package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

type corteService struct {
	BaseService
	boxes  portsrepo.CashBoxReader
	cortes portsrepo.CorteRepositoryFacade
}

// NewCorteService creates the user corte service.
func NewCorteService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CorteSvcFacade {
	return &corteService{
		BaseService: newBaseService(options...),
		boxes:       repos.CashBoxRepo,
		cortes:      repos.CorteRepo,
	}
}

var _ portssvc.CorteSvcFacade = (*corteService)(nil)

func (s *corteService) CreateCorte(ctx context.Context, req dto.CreateCorteRequest, actor domain.Actor) (*domain.UserCorte, error) {
	if req.TotalDeclarado.IsNegative() {
		return nil, fmt.Errorf("%w: totalDeclarado must not be negative", apperrors.ErrValidation)
	}
	box, err := s.boxes.FindCashBoxByID(ctx, req.CashBoxID)
	if err != nil {
		return nil, err
	}
	if box.Status != domain.StatusOpen {
		return nil, fmt.Errorf("%w: cash box %s is %s", apperrors.ErrInvalidTransition, box.CashBoxID, box.Status)
	}

	existing, err := s.cortes.FindCorteByUser(ctx, box.CashBoxID, actor.UserID)
	if err == nil {
		return nil, fmt.Errorf("%w: user already has corte %s for this box", apperrors.ErrDuplicate, existing.CorteID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	corte := domain.UserCorte{
		CorteID:        uuid.NewString(),
		CashBoxID:      box.CashBoxID,
		Usuario:        actor.UserID,
		TotalDeclarado: domain.Money(req.TotalDeclarado),
		Observaciones:  strings.TrimSpace(req.Observaciones),
		Status:         domain.CortePending,
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.cortes.SaveCorte(ctx, corte); err != nil {
		s.logUnexpected(ctx, err, "Failed to save corte", slog.String("cash_box_id", box.CashBoxID))
		return nil, err
	}
	s.LogInfo(ctx, "Corte recorded", slog.String("corte_id", corte.CorteID))
	return &corte, nil
}

func (s *corteService) ValidateCorte(ctx context.Context, cashBoxID, usuario string, actor domain.Actor) (*domain.UserCorte, error) {
	if err := requireValidator(actor); err != nil {
		return nil, err
	}
	if usuario == actor.UserID {
		return nil, fmt.Errorf("%w: a corte cannot be validated by its owner", apperrors.ErrForbidden)
	}
	corte, err := s.cortes.FindCorteByUser(ctx, cashBoxID, usuario)
	if err != nil {
		return nil, err
	}
	if corte.Status != domain.CortePending {
		return nil, fmt.Errorf("%w: corte %s is already %s", apperrors.ErrInvalidTransition, corte.CorteID, corte.Status)
	}

	now := s.now()
	userID := actor.UserID
	corte.Status = domain.CorteValidated
	corte.ValidatedBy = &userID
	corte.ValidatedAt = &now
	corte.Touch(userID, now)
	if err := s.cortes.UpdateCorte(ctx, *corte, domain.CortePending); err != nil {
		s.logUnexpected(ctx, err, "Failed to validate corte", slog.String("corte_id", corte.CorteID))
		return nil, err
	}
	s.LogInfo(ctx, "Corte validated", slog.String("corte_id", corte.CorteID))
	return corte, nil
}

func (s *corteService) ListCortes(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error) {
	cortes, err := s.cortes.ListCortesByCashBox(ctx, cashBoxID)
	if err != nil {
		return nil, err
	}
	if cortes == nil {
		return []domain.UserCorte{}, nil
	}
	return cortes, nil
}
