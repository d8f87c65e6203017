package accounting

import (
	"fmt"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the absolute difference still considered balanced.
var DefaultTolerance = decimal.RequireFromString("0.01")

// BalanceInput carries the day's totals for one cash box.
// SaldoInicial is optional; when not valid the FondoFijo is used as the opening amount.
type BalanceInput struct {
	FondoFijo               decimal.Decimal
	SaldoInicial            decimal.NullDecimal
	TotalEfectivo           decimal.Decimal
	TotalTarjeta            decimal.Decimal
	TotalTransferencia      decimal.Decimal
	TotalDepositoVentanilla decimal.Decimal
	TotalEgresos            decimal.Decimal
	TotalDepositosBanco     decimal.Decimal
}

// BalanceResult is what the calculator derives from a BalanceInput.
type BalanceResult struct {
	SaldoDisponible decimal.Decimal
	EntregaAGeneral decimal.Decimal
	SaldoFinal      decimal.Decimal
	// Diferencia is |SaldoFinal - FondoFijo|.
	Diferencia decimal.Decimal
	Cuadrado   bool
}

// Opening returns the amount the box started the day with.
func (in BalanceInput) Opening() decimal.Decimal {
	if in.SaldoInicial.Valid {
		return in.SaldoInicial.Decimal
	}
	return in.FondoFijo
}

// ValidateInput rejects negative amounts. CalculateBalance does not call it:
// the arithmetic itself is defined for any input.
func ValidateInput(in BalanceInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"fondoFijo", in.FondoFijo},
		{"totalEfectivo", in.TotalEfectivo},
		{"totalTarjeta", in.TotalTarjeta},
		{"totalTransferencia", in.TotalTransferencia},
		{"totalDepositoVentanilla", in.TotalDepositoVentanilla},
		{"totalEgresos", in.TotalEgresos},
		{"totalDepositosBanco", in.TotalDepositosBanco},
	}
	if in.SaldoInicial.Valid {
		fields = append(fields, struct {
			name  string
			value decimal.Decimal
		}{"saldoInicial", in.SaldoInicial.Decimal})
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", f.name, f.value.String())
		}
	}
	return nil
}

// CalculateBalance derives available balance, the amount handed to general cash
// and the final balance:
//
//	SaldoDisponible = opening + efectivo + tarjeta + transferencia + depositoVentanilla - egresos - depositosBanco
//	EntregaAGeneral = max(0, SaldoDisponible - FondoFijo)
//	SaldoFinal      = SaldoDisponible - EntregaAGeneral
//
// SaldoDisponible is never clamped. Results are rounded to two decimals.
func CalculateBalance(in BalanceInput, tolerance decimal.Decimal) BalanceResult {
	disponible := in.Opening().
		Add(in.TotalEfectivo).
		Add(in.TotalTarjeta).
		Add(in.TotalTransferencia).
		Add(in.TotalDepositoVentanilla).
		Sub(in.TotalEgresos).
		Sub(in.TotalDepositosBanco)
	disponible = domain.Money(disponible)

	fondo := domain.Money(in.FondoFijo)
	entrega := decimal.Max(decimal.Zero, disponible.Sub(fondo))
	final := disponible.Sub(entrega)
	diferencia := final.Sub(fondo).Abs()

	return BalanceResult{
		SaldoDisponible: disponible,
		EntregaAGeneral: entrega,
		SaldoFinal:      final,
		Diferencia:      diferencia,
		Cuadrado:        WithinTolerance(final, fondo, tolerance),
	}
}

// WithinTolerance compares two amounts with an absolute tolerance.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// CuadreStatusFor maps a calculator result onto the recorded cuadre outcome.
func CuadreStatusFor(r BalanceResult) domain.CuadreStatus {
	if r.Cuadrado {
		return domain.CuadreBalanced
	}
	return domain.CuadreWithDifference
}

// Totals are the per-method sums fed into the calculator.
type Totals struct {
	Efectivo           decimal.Decimal `json:"efectivo"`
	Tarjeta            decimal.Decimal `json:"tarjeta"`
	Transferencia      decimal.Decimal `json:"transferencia"`
	DepositoVentanilla decimal.Decimal `json:"depositoVentanilla"`
	Egresos            decimal.Decimal `json:"egresos"`
	PendingCount       int             `json:"pendingCount"`
	RejectedCount      int             `json:"rejectedCount"`
}

// SumTotals aggregates movements and policy payments.
// Only approved entries are summed; pending and rejected ones are only counted.
// Outflows (EGRESO, GASTO) go to Egresos whatever their method; every other
// movement type and every policy payment is income in its method's bucket.
func SumTotals(movements []domain.Movement, payments []domain.PolicyPayment) (Totals, error) {
	t := Totals{
		Efectivo:           decimal.Zero,
		Tarjeta:            decimal.Zero,
		Transferencia:      decimal.Zero,
		DepositoVentanilla: decimal.Zero,
		Egresos:            decimal.Zero,
	}
	for _, m := range movements {
		if !t.count(m.Validado) {
			continue
		}
		if m.Type.IsOutflow() {
			t.Egresos = t.Egresos.Add(m.Amount)
			continue
		}
		if err := t.addIncome(m.Method, m.Amount); err != nil {
			return Totals{}, fmt.Errorf("movement %s: %w", m.MovementID, err)
		}
	}
	for _, p := range payments {
		if !t.count(p.Validado) {
			continue
		}
		if err := t.addIncome(p.Method, p.Amount); err != nil {
			return Totals{}, fmt.Errorf("policy payment %s: %w", p.PaymentID, err)
		}
	}
	return t, nil
}

// count tallies non-approved entries and reports whether the entry should be summed.
func (t *Totals) count(v domain.ValidationState) bool {
	switch v {
	case domain.ValidationApproved:
		return true
	case domain.ValidationPending:
		t.PendingCount++
	case domain.ValidationRejected:
		t.RejectedCount++
	}
	return false
}

func (t *Totals) addIncome(method domain.PaymentMethod, amount decimal.Decimal) error {
	switch method {
	case domain.MethodCash:
		t.Efectivo = t.Efectivo.Add(amount)
	case domain.MethodCard:
		t.Tarjeta = t.Tarjeta.Add(amount)
	case domain.MethodTransfer:
		t.Transferencia = t.Transferencia.Add(amount)
	case domain.MethodDeposit:
		t.DepositoVentanilla = t.DepositoVentanilla.Add(amount)
	default:
		return fmt.Errorf("unknown payment method '%s'", method)
	}
	return nil
}

// Input builds the calculator input for a box from aggregated totals.
func (t Totals) Input(box domain.CashBox, depositosBanco decimal.Decimal) BalanceInput {
	return BalanceInput{
		FondoFijo:               box.FondoFijo,
		SaldoInicial:            decimal.NewNullDecimal(box.SaldoInicial),
		TotalEfectivo:           t.Efectivo,
		TotalTarjeta:            t.Tarjeta,
		TotalTransferencia:      t.Transferencia,
		TotalDepositoVentanilla: t.DepositoVentanilla,
		TotalEgresos:            t.Egresos,
		TotalDepositosBanco:     depositosBanco,
	}
}

// SumDeposits adds up bank deposits, rejecting non-positive amounts.
func SumDeposits(deposits []domain.BankDeposit) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, d := range deposits {
		if !d.Amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("deposit %d amount must be positive", i)
		}
		total = total.Add(d.Amount)
	}
	return total, nil
}
