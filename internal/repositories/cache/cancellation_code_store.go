package cache

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/cuadre_caja_app/internal/apperrors"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
)

const (
	codeKeyPrefix   = "cuadre:cancel:code:"
	targetKeyPrefix = "cuadre:cancel:target:"
)

// DefaultRetention keeps expired and used codes around so a late attempt is
// reported as expired or used rather than unknown.
const DefaultRetention = time.Hour

// issueScript stores a code and replaces whatever code the target had before.
//
// KEYS[1] code key, KEYS[2] target key
// ARGV: scope, target, issued_by, issued_at_ms, expires_at_ms, ttl_ms, code, code key prefix
var issueScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 'DUPLICATE'
end
local previous = redis.call('GET', KEYS[2])
if previous then
	redis.call('DEL', ARGV[8] .. previous)
end
redis.call('HSET', KEYS[1], 'scope', ARGV[1], 'target', ARGV[2], 'issued_by', ARGV[3],
	'issued_at', ARGV[4], 'expires_at', ARGV[5], 'used', '0')
redis.call('PEXPIRE', KEYS[1], ARGV[6])
redis.call('SET', KEYS[2], ARGV[7], 'PX', ARGV[6])
return 'OK'
`)

// consumeScript checks and marks a code used in one step.
//
// KEYS[1] code key
// ARGV: scope, target, now_ms, usuario
var consumeScript = redis.NewScript(`
local h = redis.call('HMGET', KEYS[1], 'scope', 'target', 'expires_at', 'used', 'issued_by', 'issued_at')
if not h[1] then
	return {'NOT_FOUND'}
end
if h[1] ~= ARGV[1] or h[2] ~= ARGV[2] then
	return {'MISMATCH'}
end
if h[4] == '1' then
	return {'USED'}
end
if tonumber(ARGV[3]) >= tonumber(h[3]) then
	return {'EXPIRED'}
end
redis.call('HSET', KEYS[1], 'used', '1', 'consumed_by', ARGV[4], 'consumed_at', ARGV[3])
return {'OK', h[5], h[6], h[3]}
`)

// CancellationCodeStore keeps one-time cancellation codes in Redis.
type CancellationCodeStore struct {
	client    redis.Scripter
	retention time.Duration
}

// NewCancellationCodeStore creates a store on top of a go-redis client.
func NewCancellationCodeStore(client redis.Scripter, retention time.Duration) *CancellationCodeStore {
	if retention < 0 {
		retention = 0
	}
	return &CancellationCodeStore{client: client, retention: retention}
}

var _ portsrepo.CancellationCodeStore = (*CancellationCodeStore)(nil)

func (s *CancellationCodeStore) Issue(ctx context.Context, auth domain.CancellationAuthorization) error {
	window := auth.ExpiresAt.Sub(auth.IssuedAt)
	if window <= 0 {
		return fmt.Errorf("%w: code expires before it is issued", apperrors.ErrValidation)
	}
	ttl := window + s.retention

	res, err := issueScript.Run(ctx, s.client,
		[]string{codeKeyPrefix + auth.Code, targetKey(auth.Scope, auth.TargetID)},
		string(auth.Scope), auth.TargetID, auth.IssuedBy,
		auth.IssuedAt.UnixMilli(), auth.ExpiresAt.UnixMilli(), ttl.Milliseconds(),
		auth.Code, codeKeyPrefix,
	).Text()
	if err != nil {
		return backendError("failed to store cancellation code", err)
	}
	if res == "DUPLICATE" {
		return fmt.Errorf("%w: cancellation code collision", apperrors.ErrDuplicate)
	}
	return nil
}

func (s *CancellationCodeStore) Consume(ctx context.Context, scope domain.CancellationScope, targetID, code, usuario string, now time.Time) (*domain.CancellationAuthorization, error) {
	if code == "" {
		return nil, apperrors.ErrCodeNotFound
	}
	res, err := consumeScript.Run(ctx, s.client,
		[]string{codeKeyPrefix + code},
		string(scope), targetID, now.UnixMilli(), usuario,
	).StringSlice()
	if err != nil {
		return nil, backendError("failed to consume cancellation code", err)
	}
	if len(res) == 0 {
		return nil, backendError("failed to consume cancellation code", fmt.Errorf("empty script reply"))
	}

	switch res[0] {
	case "OK":
	case "NOT_FOUND":
		return nil, apperrors.ErrCodeNotFound
	case "MISMATCH":
		return nil, apperrors.ErrCodeMismatchedTarget
	case "USED":
		return nil, apperrors.ErrCodeAlreadyUsed
	case "EXPIRED":
		return nil, apperrors.ErrCodeExpired
	default:
		return nil, backendError("failed to consume cancellation code", fmt.Errorf("unexpected reply %q", res[0]))
	}
	if len(res) < 4 {
		return nil, backendError("failed to consume cancellation code", fmt.Errorf("short script reply"))
	}

	issuedAt, err := parseMillis(res[2])
	if err != nil {
		return nil, backendError("corrupt cancellation code", err)
	}
	expiresAt, err := parseMillis(res[3])
	if err != nil {
		return nil, backendError("corrupt cancellation code", err)
	}
	consumedAt := now
	return &domain.CancellationAuthorization{
		Code:       code,
		Scope:      scope,
		TargetID:   targetID,
		IssuedBy:   res[1],
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
		ConsumedBy: &usuario,
		ConsumedAt: &consumedAt,
	}, nil
}

func targetKey(scope domain.CancellationScope, targetID string) string {
	return targetKeyPrefix + string(scope) + ":" + targetID
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}

func backendError(msg string, err error) error {
	return apperrors.NewAppError(http.StatusServiceUnavailable, msg, fmt.Errorf("%w: %v", apperrors.ErrBackend, err))
}
