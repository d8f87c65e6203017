package services

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
)

// CashBoxReaderSvc defines read operations for cash boxes.
type CashBoxReaderSvc interface {
	// GetCashBox retrieves a box, checking it is of the expected kind.
	GetCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*domain.CashBox, error)

	// GetSummary computes the live balance of a box from its approved entries.
	GetSummary(ctx context.Context, kind domain.CashBoxKind, cashBoxID string) (*dto.CashBoxSummaryResponse, error)
}

// ReconciliationWriterSvc drives a box through its lifecycle.
type ReconciliationWriterSvc interface {
	// OpenCashBox creates an ABIERTA box seeded with the previous final balance.
	OpenCashBox(ctx context.Context, kind domain.CashBoxKind, req dto.OpenCashBoxRequest, actor domain.Actor) (*domain.CashBox, error)

	// CreatePrecuadre records the counted money and moves the box to PRECUADRE.
	CreatePrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.CreatePrecuadreRequest, actor domain.Actor) (*domain.Precuadre, error)

	// DiscardPrecuadre returns a PRECUADRE box to ABIERTA.
	DiscardPrecuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) error

	// SubmitCuadre finalizes the reconciliation and moves the box to CUADRADA.
	SubmitCuadre(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, req dto.SubmitCuadreRequest, actor domain.Actor) (*dto.CuadreResponse, error)

	// CloseCashBox moves a CUADRADA box to CERRADA.
	CloseCashBox(ctx context.Context, kind domain.CashBoxKind, cashBoxID string, actor domain.Actor) (*domain.CashBox, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces.
type ReconciliationSvcFacade interface {
	CashBoxReaderSvc
	ReconciliationWriterSvc
}
