package repositories

import (
	"context"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// CorteReader defines read operations for user cortes.
type CorteReader interface {
	FindCorteByID(ctx context.Context, corteID string) (*domain.UserCorte, error)

	// FindCorteByUser returns the non-cancelled corte of a user for a box.
	FindCorteByUser(ctx context.Context, cashBoxID, usuario string) (*domain.UserCorte, error)

	ListCortesByCashBox(ctx context.Context, cashBoxID string) ([]domain.UserCorte, error)

	// CountPendingCortes returns how many cortes of the box are still PENDIENTE.
	CountPendingCortes(ctx context.Context, cashBoxID string) (int, error)
}

// CorteWriter defines write operations for user cortes.
type CorteWriter interface {
	SaveCorte(ctx context.Context, corte domain.UserCorte) error

	// UpdateCorte persists corte only if its stored status still equals expected.
	UpdateCorte(ctx context.Context, corte domain.UserCorte, expected domain.CorteStatus) error
}

// CorteRepositoryFacade combines all corte repository interfaces.
type CorteRepositoryFacade interface {
	CorteReader
	CorteWriter
}
