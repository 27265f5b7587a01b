package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when a caller's role does not allow an operation
var ErrForbidden = errors.New("forbidden")

// Role of a session caller
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleVendor, RoleSupplier:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Context identifies the caller of a session. The core treats it as an
// opaque capability; how it was established is up to the adapter.
type Context interface {
	CallerID() string
	Role() Role
}

// StaticContext is a Context with fixed values
type StaticContext struct {
	ID       string
	CallerAs Role
}

func (c StaticContext) CallerID() string { return c.ID }
func (c StaticContext) Role() Role       { return c.CallerAs }

// RequireRole fails with ErrForbidden unless the caller has the given role
func RequireRole(caller Context, role Role) error {
	if caller == nil || caller.CallerID() == "" {
		return fmt.Errorf("%w: no caller", ErrForbidden)
	}
	if caller.Role() != role {
		return fmt.Errorf("%w: %s %s cannot act as %s", ErrForbidden, caller.Role(), caller.CallerID(), role)
	}
	return nil
}
