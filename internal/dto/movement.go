package dto

import (
	"github.com/shopspring/decimal"
)

// CreateMovementRequest records a movement against an open cash box.
// Amounts above 100 need a voucher reference and above 500 a manager approval
// reference; see validateMovementReferences.
type CreateMovementRequest struct {
	CashBoxID          string          `json:"cashBoxID" binding:"required,uuid"`
	Tipo               string          `json:"tipo" binding:"required,oneof=INGRESO EGRESO GASTO REPOSICION"`
	MetodoPago         string          `json:"metodoPago" binding:"required,oneof=EFECTIVO TRANSFERENCIA TARJETA DEPOSITO"`
	Monto              decimal.Decimal `json:"monto" binding:"gt=0"`
	Concepto           string          `json:"concepto" binding:"required,max=255"`
	VoucherRef         *string         `json:"voucherRef" binding:"omitempty,max=64"`
	ManagerApprovalRef *string         `json:"managerApprovalRef" binding:"omitempty,max=64"`
	BankAccountID      *string         `json:"bankAccountID" binding:"omitempty,max=64"`
}

// Validation actions accepted by the PATCH endpoints.
const (
	ActionApprove = "APROBAR"
	ActionReject  = "RECHAZAR"
)

// ValidateEntryRequest approves or rejects a pending movement or policy payment.
// The motive is checked by the service so an empty one yields a MissingMotive error.
type ValidateEntryRequest struct {
	Accion string `json:"accion" binding:"required,oneof=APROBAR RECHAZAR"`
	Motivo string `json:"motivo" binding:"max=500"`
}

// CreatePolicyPaymentRequest records an insurance premium collected at the box.
type CreatePolicyPaymentRequest struct {
	CashBoxID    string          `json:"cashBoxID" binding:"required,uuid"`
	NumeroPoliza string          `json:"numeroPoliza" binding:"required,max=64"`
	Asegurado    string          `json:"asegurado" binding:"max=200"`
	Monto        decimal.Decimal `json:"monto" binding:"gt=0"`
	MetodoPago   string          `json:"metodoPago" binding:"required,oneof=EFECTIVO TRANSFERENCIA TARJETA DEPOSITO"`
}

// CreateCorteRequest is a cashier's own closing for a box.
type CreateCorteRequest struct {
	CashBoxID      string          `json:"cashBoxID" binding:"required,uuid"`
	TotalDeclarado decimal.Decimal `json:"totalDeclarado" binding:"gte=0"`
	Observaciones  string          `json:"observaciones" binding:"max=500"`
}
