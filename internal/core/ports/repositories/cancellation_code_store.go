package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// CancellationCodeStore keeps one-time cancellation codes.
type CancellationCodeStore interface {
	// Issue stores auth as the only valid code for its (scope, target); any code
	// previously issued for the same target stops working.
	Issue(ctx context.Context, auth domain.CancellationAuthorization) error

	// Consume atomically checks that code was issued for (scope, targetID), has not
	// expired at now and was never used, and marks it used by usuario.
	// Failures wrap apperrors.ErrInvalidCancellationCode.
	Consume(ctx context.Context, scope domain.CancellationScope, targetID, code, usuario string, now time.Time) (*domain.CancellationAuthorization, error)
}
