package services

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// CorteSvcFacade defines operations on user cortes.
type CorteSvcFacade interface {
	// CreateCorte records the caller's own corte for a box.
	CreateCorte(ctx context.Context, req dto.CreateCorteRequest, actor domain.Actor) (*domain.UserCorte, error)

	// ValidateCorte approves the pending corte of usuario for a box.
	ValidateCorte(ctx context.Context, cashBoxID, usuario string, actor domain.Actor) (*domain.UserCorte, error)

	ListCortes(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error)
}
