package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CashBoxKind distinguishes branch petty cash from the consolidated general box.
type CashBoxKind string

const (
	PettyCash   CashBoxKind = "CAJA_CHICA"
	GeneralCash CashBoxKind = "CAJA_GENERAL"
)

// ParseCashBoxKind rejects unknown kinds.
func ParseCashBoxKind(s string) (CashBoxKind, error) {
	switch k := CashBoxKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case PettyCash, GeneralCash:
		return k, nil
	}
	return "", fmt.Errorf("unknown cash box kind %q", s)
}

// CancellationScope is the scope a cancellation code for a cuadre of this kind is issued under.
func (k CashBoxKind) CancellationScope() CancellationScope {
	if k == GeneralCash {
		return ScopeGeneralCuadre
	}
	return ScopePettyCuadre
}

// CashBoxStatus is the lifecycle state of a cash box.
type CashBoxStatus string

const (
	StatusOpen       CashBoxStatus = "ABIERTA"
	StatusPreBalance CashBoxStatus = "PRECUADRE"
	StatusBalanced   CashBoxStatus = "CUADRADA"
	StatusClosed     CashBoxStatus = "CERRADA"
	StatusCancelled  CashBoxStatus = "CANCELADA"
)

// legacyActive is accepted as an alias of StatusOpen.
const legacyActive = "ACTIVA"

// ParseCashBoxStatus maps a stored or submitted status onto the closed set.
func ParseCashBoxStatus(s string) (CashBoxStatus, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == legacyActive {
		return StatusOpen, nil
	}
	switch st := CashBoxStatus(v); st {
	case StatusOpen, StatusPreBalance, StatusBalanced, StatusClosed, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown cash box status %q", s)
}

var cashBoxTransitions = map[CashBoxStatus][]CashBoxStatus{
	StatusOpen:       {StatusPreBalance},
	StatusPreBalance: {StatusBalanced, StatusOpen},
	StatusBalanced:   {StatusClosed, StatusCancelled},
	StatusClosed:     nil,
	StatusCancelled:  nil,
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s CashBoxStatus) CanTransitionTo(next CashBoxStatus) bool {
	for _, allowed := range cashBoxTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsMovements is true only while the box is still open for the day.
func (s CashBoxStatus) AcceptsMovements() bool {
	return s == StatusOpen
}

// CashBox is a petty or general cash box for one branch and business day.
type CashBox struct {
	CashBoxID    string          `json:"cashBoxID"`
	Kind         CashBoxKind     `json:"kind"`
	BranchID     string          `json:"branchID"`
	BusinessDate time.Time       `json:"businessDate"`
	SaldoInicial decimal.Decimal `json:"saldoInicial"`
	SaldoFinal   decimal.Decimal `json:"saldoFinal"`
	FondoFijo    decimal.Decimal `json:"fondoFijo"`
	Responsable  string          `json:"responsable"`
	Status       CashBoxStatus   `json:"status"`
	AuditFields
}

// Transition moves the box to next, failing when the state machine forbids it.
func (b *CashBox) Transition(next CashBoxStatus, userID string, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("cash box %s cannot go from %s to %s", b.CashBoxID, b.Status, next)
	}
	b.Status = next
	b.Touch(userID, now)
	return nil
}
