package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a cash box movement.
type MovementType string

const (
	MovementIncome        MovementType = "INGRESO"
	MovementOutflow       MovementType = "EGRESO"
	MovementExpense       MovementType = "GASTO"
	MovementReplenishment MovementType = "REPOSICION"
)

// ParseMovementType rejects unknown movement types.
func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(strings.ToUpper(strings.TrimSpace(s))); t {
	case MovementIncome, MovementOutflow, MovementExpense, MovementReplenishment:
		return t, nil
	}
	return "", fmt.Errorf("unknown movement type %q", s)
}

// IsOutflow is true for movements that take money out of the box.
func (t MovementType) IsOutflow() bool {
	return t == MovementOutflow || t == MovementExpense
}

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "EFECTIVO"
	MethodTransfer PaymentMethod = "TRANSFERENCIA"
	MethodCard     PaymentMethod = "TARJETA"
	MethodDeposit  PaymentMethod = "DEPOSITO"
)

// ParsePaymentMethod accepts the canonical names case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodCash, MethodTransfer, MethodCard, MethodDeposit:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// RequiresSecondApproval is true for every non-cash method.
func (m PaymentMethod) RequiresSecondApproval() bool {
	return m != MethodCash
}

// ValidationState is the stored "Validado" flag.
type ValidationState int

const (
	ValidationPending  ValidationState = 0
	ValidationApproved ValidationState = 1
	ValidationRejected ValidationState = 2
)

func (v ValidationState) String() string {
	switch v {
	case ValidationPending:
		return "PENDIENTE"
	case ValidationApproved:
		return "APROBADO"
	case ValidationRejected:
		return "RECHAZADO"
	default:
		return "DESCONOCIDO"
	}
}

// ParseValidationState accepts the numeric flag or its name.
func ParseValidationState(s string) (ValidationState, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "0", "PENDIENTE":
		return ValidationPending, nil
	case "1", "APROBADO":
		return ValidationApproved, nil
	case "2", "RECHAZADO":
		return ValidationRejected, nil
	}
	return 0, fmt.Errorf("unknown validation state %q", s)
}

// Thresholds above which a movement must carry extra references.
var (
	VoucherThreshold         = decimal.NewFromInt(100)
	ManagerApprovalThreshold = decimal.NewFromInt(500)
)

// Movement is a single income or outflow recorded against a cash box.
type Movement struct {
	MovementID         string          `json:"movementID"`
	CashBoxID          string          `json:"cashBoxID"`
	Type               MovementType    `json:"type"`
	Method             PaymentMethod   `json:"method"`
	Amount             decimal.Decimal `json:"amount"`
	Concept            string          `json:"concept"`
	VoucherRef         *string         `json:"voucherRef,omitempty"`
	ManagerApprovalRef *string         `json:"managerApprovalRef,omitempty"`
	BankAccountID      *string         `json:"bankAccountID,omitempty"`
	Validado           ValidationState `json:"validado"`
	ValidatedBy        *string         `json:"validatedBy,omitempty"`
	ValidatedAt        *time.Time      `json:"validatedAt,omitempty"`
	RejectionMotive    *string         `json:"rejectionMotive,omitempty"`
	AuditFields
}

// Approve marks the movement as validated by userID.
func (m *Movement) Approve(userID string, now time.Time) error {
	if m.Validado != ValidationPending {
		return fmt.Errorf("movement %s is already %s", m.MovementID, m.Validado)
	}
	m.Validado = ValidationApproved
	m.ValidatedBy = &userID
	m.ValidatedAt = &now
	m.Touch(userID, now)
	return nil
}

// Reject marks the movement as rejected with the given motive.
func (m *Movement) Reject(userID, motive string, now time.Time) error {
	if m.Validado != ValidationPending {
		return fmt.Errorf("movement %s is already %s", m.MovementID, m.Validado)
	}
	m.Validado = ValidationRejected
	m.ValidatedBy = &userID
	m.ValidatedAt = &now
	m.RejectionMotive = &motive
	m.Touch(userID, now)
	return nil
}

// PolicyPayment is an insurance premium collected at the branch cash box.
type PolicyPayment struct {
	PaymentID       string          `json:"paymentID"`
	CashBoxID       string          `json:"cashBoxID"`
	PolicyNumber    string          `json:"policyNumber"`
	Insured         string          `json:"insured"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	Validado        ValidationState `json:"validado"`
	ValidatedBy     *string         `json:"validatedBy,omitempty"`
	ValidatedAt     *time.Time      `json:"validatedAt,omitempty"`
	RejectionMotive *string         `json:"rejectionMotive,omitempty"`
	AuditFields
}

// Approve marks the payment as validated by userID.
func (p *PolicyPayment) Approve(userID string, now time.Time) error {
	if p.Validado != ValidationPending {
		return fmt.Errorf("policy payment %s is already %s", p.PaymentID, p.Validado)
	}
	p.Validado = ValidationApproved
	p.ValidatedBy = &userID
	p.ValidatedAt = &now
	p.Touch(userID, now)
	return nil
}

// Reject marks the payment as rejected with the given motive.
func (p *PolicyPayment) Reject(userID, motive string, now time.Time) error {
	if p.Validado != ValidationPending {
		return fmt.Errorf("policy payment %s is already %s", p.PaymentID, p.Validado)
	}
	p.Validado = ValidationRejected
	p.ValidatedBy = &userID
	p.ValidatedAt = &now
	p.RejectionMotive = &motive
	p.Touch(userID, now)
	return nil
}
