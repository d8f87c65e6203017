package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// CashBoxReader defines read operations for cash boxes.
type CashBoxReader interface {
	// FindCashBoxByID retrieves a cash box by its unique identifier.
	FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)

	// FindActiveCashBox returns the box of the given kind for a branch and day that is
	// neither CERRADA nor CANCELADA. Returns apperrors.ErrNotFound when there is none.
	FindActiveCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, businessDate time.Time) (*domain.CashBox, error)

	// FindLatestBalancedCashBox returns the most recent CUADRADA or CERRADA box of the
	// given kind for a branch with a business date before the given day.
	FindLatestBalancedCashBox(ctx context.Context, kind domain.CashBoxKind, branchID string, before time.Time) (*domain.CashBox, error)
}

// CashBoxWriter defines write operations for cash boxes.
type CashBoxWriter interface {
	// SaveCashBox inserts a new cash box.
	SaveCashBox(ctx context.Context, box domain.CashBox) error

	// UpdateCashBoxStatus moves a box from one status to another only if it is still in
	// the expected status; otherwise apperrors.ErrConflict is returned.
	UpdateCashBoxStatus(ctx context.Context, cashBoxID string, from, to domain.CashBoxStatus, userID string, at time.Time) error
}

// CashBoxRepositoryFacade combines all cash box repository interfaces.
type CashBoxRepositoryFacade interface {
	CashBoxReader
	CashBoxWriter
}
