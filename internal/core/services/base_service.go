package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/middleware"
	"github.com/SscSPs/cuadre_caja_app/internal/utils/accounting"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock      func() time.Time
	tolerance  decimal.Decimal
	codeTTL    time.Duration
	codeLength int
}

// ServiceOption is a functional option shared by every service constructor.
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithTolerance sets the absolute difference still considered balanced.
func WithTolerance(tolerance decimal.Decimal) ServiceOption {
	return func(s *BaseService) {
		s.tolerance = tolerance
	}
}

// WithCancellationCodes sets how long cancellation codes stay valid and how long they are.
func WithCancellationCodes(ttl time.Duration, length int) ServiceOption {
	return func(s *BaseService) {
		s.codeTTL = ttl
		s.codeLength = length
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		clock:      time.Now,
		tolerance:  accounting.DefaultTolerance,
		codeTTL:    10 * time.Minute,
		codeLength: 8,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// requireValidator checks the actor may approve or reject.
func requireValidator(actor domain.Actor) error {
	if !actor.Role.CanValidate() {
		return fmt.Errorf("%w: role %s cannot validate", apperrors.ErrForbidden, actor.Role)
	}
	return nil
}

// requireIssuer checks the actor may issue cancellation codes.
func requireIssuer(actor domain.Actor) error {
	if !actor.Role.CanIssueCancellationCodes() {
		return fmt.Errorf("%w: role %s cannot authorize cancellations", apperrors.ErrForbidden, actor.Role)
	}
	return nil
}

// checkMotive trims a cancellation motive and enforces its minimum length.
func checkMotive(motive string) (string, error) {
	motive = strings.TrimSpace(motive)
	if motive == "" {
		return "", apperrors.ErrMissingMotive
	}
	if len([]rune(motive)) < domain.MinMotiveLength {
		return "", fmt.Errorf("%w: motive must have at least %d characters", apperrors.ErrValidation, domain.MinMotiveLength)
	}
	return motive, nil
}

// invalidTransition builds the error returned when a box is in the wrong state.
func invalidTransition(box *domain.CashBox, next domain.CashBoxStatus) error {
	return fmt.Errorf("%w: cash box %s is %s, cannot move to %s", apperrors.ErrInvalidTransition, box.CashBoxID, box.Status, next)
}

// businessDay truncates t to its UTC calendar day.
func businessDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// logUnexpected logs infrastructure failures; domain errors are the caller's to report.
func (s *BaseService) logUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		s.LogError(ctx, err, msg, keyvals...)
	}
}
