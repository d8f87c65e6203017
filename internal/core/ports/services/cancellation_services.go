package services

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// CancellationCodeIssuerSvc issues one-time cancellation codes.
type CancellationCodeIssuerSvc interface {
	// GenerateCuadreCode issues a code for the cuadre of a CUADRADA box.
	GenerateCuadreCode(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CancellationAuthorization, error)

	// GenerateCorteCode issues a code for a user corte.
	GenerateCorteCode(ctx context.Context, corteID string, actor domain.Actor) (*domain.CancellationAuthorization, error)
}

// CancellationExecutorSvc cancels records with a previously issued code.
type CancellationExecutorSvc interface {
	// CancelCuadre cancels the cuadre of a box and moves the box to CANCELADA.
	CancelCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CancelRequest, actor domain.Actor) (*domain.Cuadre, error)

	// CancelCorte cancels a user corte.
	CancelCorte(ctx context.Context, corteID string, req dto.CancelRequest, actor domain.Actor) (*domain.UserCorte, error)
}

// CancellationSvcFacade combines all cancellation service interfaces.
type CancellationSvcFacade interface {
	CancellationCodeIssuerSvc
	CancellationExecutorSvc
}
