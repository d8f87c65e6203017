package domain

import (
	"fmt"
	"time"
)

// CancellationScope namespaces codes so a corte code can never cancel a cuadre.
type CancellationScope string

const (
	ScopePettyCuadre   CancellationScope = "CUADRE_CAJA_CHICA"
	ScopeGeneralCuadre CancellationScope = "CUADRE_CAJA_GENERAL"
	ScopeUserCorte     CancellationScope = "CORTE_USUARIO"
)

// ParseCancellationScope rejects unknown scopes.
func ParseCancellationScope(s string) (CancellationScope, error) {
	switch sc := CancellationScope(s); sc {
	case ScopePettyCuadre, ScopeGeneralCuadre, ScopeUserCorte:
		return sc, nil
	}
	return "", fmt.Errorf("unknown cancellation scope %q", s)
}

// MinMotiveLength is the shortest justification accepted for a cancellation.
const MinMotiveLength = 10

// CancellationAuthorization is a one-time code bound to a single target record.
type CancellationAuthorization struct {
	Code       string            `json:"code"`
	Scope      CancellationScope `json:"scope"`
	TargetID   string            `json:"targetID"`
	IssuedBy   string            `json:"issuedBy"`
	IssuedAt   time.Time         `json:"issuedAt"`
	ExpiresAt  time.Time         `json:"expiresAt"`
	ConsumedBy *string           `json:"consumedBy,omitempty"`
	ConsumedAt *time.Time        `json:"consumedAt,omitempty"`
}

// Expired reports whether the code can no longer be used at now.
func (a CancellationAuthorization) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}
