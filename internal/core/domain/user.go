package domain

import "fmt"

// Role is the back-office role carried in the access token.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "GERENTE"
	RoleSupervisor Role = "SUPERVISOR"
	RoleCashier    Role = "CAJERO"
)

// ParseRole rejects unknown role names.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleSupervisor, RoleCashier:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanIssueCancellationCodes reports whether the role may authorize cancellations.
func (r Role) CanIssueCancellationCodes() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanValidate reports whether the role may approve or reject movements and cortes.
func (r Role) CanValidate() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSupervisor
}

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID string
	Role   Role
}
