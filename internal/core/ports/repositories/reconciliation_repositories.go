package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// ReconciliationReader defines read operations for precuadres and cuadres.
type ReconciliationReader interface {
	// FindPrecuadreByCashBox returns the latest precuadre of a box.
	FindPrecuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Precuadre, error)

	// FindCuadreByCashBox returns the latest cuadre of a box.
	FindCuadreByCashBox(ctx context.Context, cashBoxID string) (*domain.Cuadre, error)
}

// ReconciliationWriter persists reconciliation steps. Each method is atomic: the record
// and the box status change commit together or not at all, and the box status change is
// conditional on the status the caller observed (apperrors.ErrConflict otherwise).
type ReconciliationWriter interface {
	// SavePrecuadre inserts the precuadre and moves the box ABIERTA -> PRECUADRE.
	// Pending cortes are recounted in the same transaction: apperrors.ErrBlockedByPendingUsers.
	SavePrecuadre(ctx context.Context, precuadre domain.Precuadre) error

	// DiscardPrecuadre deletes the unlocked precuadre and moves the box PRECUADRE -> ABIERTA.
	DiscardPrecuadre(ctx context.Context, cashBoxID string, userID string, at time.Time) error

	// SaveCuadre inserts the cuadre, locks its precuadre, stores the final balance and
	// moves the box PRECUADRE -> CUADRADA. When transfer is not nil it is inserted as a
	// movement of its own cash box in the same transaction and linked from the cuadre.
	SaveCuadre(ctx context.Context, cuadre domain.Cuadre, transfer *domain.Movement) error

	// CancelCuadre stores the cancelled cuadre and moves the box CUADRADA -> CANCELADA.
	// A linked transfer movement is rejected in the same transaction; if its box is no
	// longer ABIERTA nothing is written and apperrors.ErrInvalidTransition is returned.
	CancelCuadre(ctx context.Context, cuadre domain.Cuadre) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
