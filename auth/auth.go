package auth

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// RoleType represents a caller role carried in access-token claims
type RoleType string

const (
	// RoleSuperAdmin can manage all tenants, including starting
	// impersonation sessions
	RoleSuperAdmin RoleType = "super_admin"
	// RoleTenantAdmin can manage settings within its own tenant
	RoleTenantAdmin RoleType = "tenant_admin"
	// RoleTenantUser is a regular user within a tenant
	RoleTenantUser RoleType = "tenant_user"
)

// Identity is the authenticated caller as established by the base
// authentication mechanism. TenantID is the caller's own tenant; the
// tenant context middleware decides separately whether an impersonation
// session changes the acting tenant.
type Identity struct {
	UserID   string
	TenantID string
	Roles    []RoleType
}

// IsSuperAdmin returns true if the identity has super admin privileges
func (id Identity) IsSuperAdmin() bool {
	for _, role := range id.Roles {
		if role == RoleSuperAdmin {
			return true
		}
	}
	return false
}

// Authenticator establishes the caller's identity from an inbound
// request. Implementations must not consult impersonation state; that is
// the middleware's concern.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

// Multi tries each authenticator in order and returns the first identity
// established. It fails with ErrUnauthorized only when every
// authenticator rejects the request.
type Multi []Authenticator

func (m Multi) Authenticate(r *http.Request) (Identity, error) {
	for _, a := range m {
		identity, err := a.Authenticate(r)
		if err == nil {
			return identity, nil
		}
	}
	return Identity{}, errors.ErrUnauthorized
}

// BearerToken extracts a Bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
