package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
)

// RegisterValidators teaches v about decimal amounts and the movement reference rules.
// It is called on gin's binding engine at startup.
func RegisterValidators(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterStructValidation(validateMovementReferences, CreateMovementRequest{})
}

// decimalValue exposes a decimal as float64 so numeric tags like gt/gte apply.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// validateMovementReferences requires a voucher above 100 and a manager approval above 500.
func validateMovementReferences(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateMovementRequest)

	if req.Monto.GreaterThan(domain.VoucherThreshold) && blank(req.VoucherRef) {
		sl.ReportError(req.VoucherRef, "voucherRef", "VoucherRef", "required_above_voucher_threshold", domain.VoucherThreshold.String())
	}
	if req.Monto.GreaterThan(domain.ManagerApprovalThreshold) && blank(req.ManagerApprovalRef) {
		sl.ReportError(req.ManagerApprovalRef, "managerApprovalRef", "ManagerApprovalRef", "required_above_approval_threshold", domain.ManagerApprovalThreshold.String())
	}
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
