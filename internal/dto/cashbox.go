package dto

import (
	"time"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/SscSPs/cuadre_caja_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// OpenCashBoxRequest opens a cash box for a branch and business day.
type OpenCashBoxRequest struct {
	BranchID     string          `json:"branchID" binding:"required,max=64"`
	BusinessDate *time.Time      `json:"businessDate"` // Optional: defaults to today (UTC)
	FondoFijo    decimal.Decimal `json:"fondoFijo" binding:"gte=0"`
	Responsable  string          `json:"responsable" binding:"omitempty,max=100"` // Optional: defaults to the caller
}

// CreatePrecuadreRequest is the counted money proposed before the final cuadre.
type CreatePrecuadreRequest struct {
	EfectivoContado decimal.Decimal `json:"efectivoContado" binding:"gte=0"`
	TotalVouchers   decimal.Decimal `json:"totalVouchers" binding:"gte=0"`
	Observaciones   string          `json:"observaciones" binding:"max=500"`
}

// DeclaredTotals are the totals the client computed; the server recomputes its own.
type DeclaredTotals struct {
	TotalEfectivo           decimal.Decimal `json:"totalEfectivo" binding:"gte=0"`
	TotalTarjeta            decimal.Decimal `json:"totalTarjeta" binding:"gte=0"`
	TotalTransferencia      decimal.Decimal `json:"totalTransferencia" binding:"gte=0"`
	TotalDepositoVentanilla decimal.Decimal `json:"totalDepositoVentanilla" binding:"gte=0"`
	TotalEgresos            decimal.Decimal `json:"totalEgresos" binding:"gte=0"`
}

// BankDepositRequest is one bank deposit made when closing the box.
type BankDepositRequest struct {
	BankAccountID string          `json:"bankAccountID" binding:"required,max=64"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	Reference     string          `json:"reference" binding:"max=100"`
}

// SubmitCuadreRequest finalizes the reconciliation of a box.
type SubmitCuadreRequest struct {
	Declared      *DeclaredTotals      `json:"declared"`
	Depositos     []BankDepositRequest `json:"depositos" binding:"dive"`
	Observaciones string               `json:"observaciones" binding:"max=500"`
}

// ToDomainDeposits converts the request deposits.
func (r SubmitCuadreRequest) ToDomainDeposits() []domain.BankDeposit {
	deposits := make([]domain.BankDeposit, len(r.Depositos))
	for i, d := range r.Depositos {
		deposits[i] = domain.BankDeposit{
			BankAccountID: d.BankAccountID,
			Amount:        d.Amount,
			Reference:     d.Reference,
		}
	}
	return deposits
}

// CashBoxSummaryResponse is a live preview of a box's balance.
type CashBoxSummaryResponse struct {
	CashBox         domain.CashBox    `json:"cashBox"`
	Totals          accounting.Totals `json:"totals"`
	SaldoDisponible decimal.Decimal   `json:"saldoDisponible"`
	EntregaAGeneral decimal.Decimal   `json:"entregaAGeneral"`
	SaldoFinal      decimal.Decimal   `json:"saldoFinal"`
	Diferencia      decimal.Decimal   `json:"diferencia"`
	Cuadrado        bool              `json:"cuadrado"`
	PendingCortes   int               `json:"pendingCortes"`
}

// CuadreResponse is the result of submitting a cuadre.
type CuadreResponse struct {
	Cuadre domain.Cuadre `json:"cuadre"`
	// DeclaredMismatch lists the declared totals that differ from the server's.
	DeclaredMismatch []string `json:"declaredMismatch,omitempty"`
	// TransferMovementID is the income booked in the general box, if any.
	TransferMovementID *string `json:"transferMovementID,omitempty"`
}

// CancelRequest carries the one-time code pair and the justification.
type CancelRequest struct {
	Usuario string `json:"usuario" binding:"omitempty,max=100"` // Optional: defaults to the caller
	Codigo  string `json:"codigo" binding:"required,max=32"`
	Motivo  string `json:"motivo" binding:"max=500"`
}

// CancellationCodeResponse is what an authorizer receives and relays to the requester.
type CancellationCodeResponse struct {
	Codigo    string                   `json:"codigo"`
	Scope     domain.CancellationScope `json:"scope"`
	TargetID  string                   `json:"targetID"`
	ExpiresAt time.Time                `json:"expiresAt"`
}

// ToCancellationCodeResponse converts an issued authorization.
func ToCancellationCodeResponse(a *domain.CancellationAuthorization) CancellationCodeResponse {
	return CancellationCodeResponse{
		Codigo:    a.Code,
		Scope:     a.Scope,
		TargetID:  a.TargetID,
		ExpiresAt: a.ExpiresAt,
	}
}
