package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CorteStatus is the state of a user's individual closing.
type CorteStatus string

const (
	CortePending   CorteStatus = "PENDIENTE"
	CorteValidated CorteStatus = "VALIDADO"
	CorteCancelled CorteStatus = "CANCELADO"
)

// UserCorte is one cashier's closing for a cash box; the box cannot be
// reconciled while any of them is still PENDIENTE.
type UserCorte struct {
	CorteID        string          `json:"corteID"`
	CashBoxID      string          `json:"cashBoxID"`
	Usuario        string          `json:"usuario"`
	TotalDeclarado decimal.Decimal `json:"totalDeclarado"`
	Observaciones  string          `json:"observaciones"`
	Status         CorteStatus     `json:"status"`
	ValidatedBy    *string         `json:"validatedBy,omitempty"`
	ValidatedAt    *time.Time      `json:"validatedAt,omitempty"`
	CancelledBy    *string         `json:"cancelledBy,omitempty"`
	CancelMotive   *string         `json:"cancelMotive,omitempty"`
	CancelledAt    *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}

// Precuadre is the pre-balance proposal taken before the final cuadre.
type Precuadre struct {
	PrecuadreID     string          `json:"precuadreID"`
	CashBoxID       string          `json:"cashBoxID"`
	SaldoEsperado   decimal.Decimal `json:"saldoEsperado"`
	EfectivoContado decimal.Decimal `json:"efectivoContado"`
	TotalVouchers   decimal.Decimal `json:"totalVouchers"`
	Diferencia      decimal.Decimal `json:"diferencia"`
	Observaciones   string          `json:"observaciones"`
	Locked          bool            `json:"locked"`
	AuditFields
}

// CuadreStatus is the outcome recorded by a final balance.
type CuadreStatus string

const (
	CuadreBalanced       CuadreStatus = "CUADRADA"
	CuadreWithDifference CuadreStatus = "CON_DIFERENCIA"
	CuadreCancelled      CuadreStatus = "CANCELADA"
)

// ParseCuadreStatus rejects unknown values.
func ParseCuadreStatus(s string) (CuadreStatus, error) {
	switch st := CuadreStatus(s); st {
	case CuadreBalanced, CuadreWithDifference, CuadreCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown cuadre status %q", s)
}

// BankDeposit is a deposit of box money into a bank account made at closing.
type BankDeposit struct {
	BankAccountID string          `json:"bankAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
}

// Cuadre finalizes a precuadre.
type Cuadre struct {
	CuadreID                string          `json:"cuadreID"`
	CashBoxID               string          `json:"cashBoxID"`
	PrecuadreID             string          `json:"precuadreID"`
	FondoFijo               decimal.Decimal `json:"fondoFijo"`
	SaldoInicial            decimal.Decimal `json:"saldoInicial"`
	TotalEfectivo           decimal.Decimal `json:"totalEfectivo"`
	TotalTarjeta            decimal.Decimal `json:"totalTarjeta"`
	TotalTransferencia      decimal.Decimal `json:"totalTransferencia"`
	TotalDepositoVentanilla decimal.Decimal `json:"totalDepositoVentanilla"`
	TotalEgresos            decimal.Decimal `json:"totalEgresos"`
	TotalDepositosBanco     decimal.Decimal `json:"totalDepositosBanco"`
	SaldoDisponible         decimal.Decimal `json:"saldoDisponible"`
	EntregaAGeneral         decimal.Decimal `json:"entregaAGeneral"`
	SaldoFinal              decimal.Decimal `json:"saldoFinal"`
	Diferencia              decimal.Decimal `json:"diferencia"`
	Deposits                []BankDeposit   `json:"deposits"`
	Observaciones           string          `json:"observaciones"`
	Status                  CuadreStatus    `json:"status"`
	TransferMovementID      *string         `json:"transferMovementID,omitempty"`
	CancelledBy             *string         `json:"cancelledBy,omitempty"`
	CancelMotive            *string         `json:"cancelMotive,omitempty"`
	CancelledAt             *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}

// Cancel marks the cuadre as cancelled. Only a successful cuadre can be cancelled.
func (c *Cuadre) Cancel(userID, motive string, now time.Time) error {
	if c.Status == CuadreCancelled {
		return fmt.Errorf("cuadre %s is already cancelled", c.CuadreID)
	}
	c.Status = CuadreCancelled
	c.CancelledBy = &userID
	c.CancelMotive = &motive
	c.CancelledAt = &now
	c.Touch(userID, now)
	return nil
}
