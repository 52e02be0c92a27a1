package errors

import (
	"errors"
	"fmt"

	"github.com/jrsteele09/go-tenant-authz/capabilities"
)

// Stable machine-checkable error codes surfaced in API payloads.
const (
	CodeInvalidArgument  = "invalid_argument"
	CodeUnauthorized     = "unauthorized"
	CodeCapabilityDenied = "capability_denied"
)

// Common error types for the tenant authorization service
var (
	// Impersonation errors
	ErrMissingTenant   = errors.New("tenant ID is required")
	ErrSessionNotFound = errors.New("impersonation session not found")

	// Authentication errors
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotSuperAdmin = errors.New("super admin access required")

	// Plan errors
	ErrPlanNotFound = errors.New("plan not found")

	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// CapabilityDeniedError reports that a protected operation's required
// capability is absent from the caller's effective authorization context.
// It carries the capability identifier so callers can present an
// actionable message (e.g. an upgrade prompt). It never carries session
// or token details.
type CapabilityDeniedError struct {
	Capability capabilities.ID
}

func (e *CapabilityDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", CodeCapabilityDenied, e.Capability)
}

// IsCapabilityDenied returns the denied capability if err is a
// CapabilityDeniedError anywhere in its chain.
func IsCapabilityDenied(err error) (capabilities.ID, bool) {
	var cde *CapabilityDeniedError
	if errors.As(err, &cde) {
		return cde.Capability, true
	}
	return "", false
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
