package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-tenant-authz/auth"
	"github.com/jrsteele09/go-tenant-authz/authctx"
	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyIdentity stores the authenticated caller identity
	ContextKeyIdentity ContextKey = "identity"
)

// IdentityFromContext retrieves the identity attached by RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	return identity, ok
}

// RequireAuth establishes the caller's identity via the configured
// authenticator and attaches it to the request context.
func (s *Server) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.authn.Authenticate(r)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
		next(w, r.WithContext(ctx))
	}
}

// RequireSuperAdmin gates the impersonation lifecycle routes. Must be
// chained after RequireAuth.
func (s *Server) RequireSuperAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.IsSuperAdmin() {
			s.writeError(w, http.StatusForbidden, errors.CodeUnauthorized, "super admin access required")
			return
		}
		next(w, r)
	}
}

// TenantContextMiddleware computes the effective authorization context
// for the request and attaches it for downstream handlers:
//
//  1. The caller's own tenant comes from the authenticated identity.
//  2. If an impersonation token is supplied, validate it. A valid
//     session switches the acting tenant to the impersonated one. An
//     expired or unknown token is silently ignored; impersonation is an
//     elevation, never a requirement, so its failure must not break
//     ordinary access.
//  3. The granted capability set is resolved fresh from the acting
//     tenant's current plan and overrides. Nothing is cached across
//     requests.
//
// Must be chained after RequireAuth.
func (s *Server) TenantContextMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			s.writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "authentication required")
			return
		}

		ac := authctx.Context{ActingTenantID: identity.TenantID}
		if token := impersonationToken(r); token != "" {
			if session, valid := s.impersonations.Validate(token); valid {
				ac.ActingTenantID = session.TenantID
				ac.OperatorID = session.OperatorID
				ac.IsImpersonating = true
			}
		}

		ac.PlanID, ac.Granted = s.resolveEntitlements(ac.ActingTenantID)
		next(w, r.WithContext(authctx.With(r.Context(), ac)))
	}
}

// RequireCapability gates a route on a single capability. Denials carry
// the stable capability_denied code plus the capability identifier so the
// caller can render an actionable message. Must be chained after
// TenantContextMiddleware.
func (s *Server) RequireCapability(capID capabilities.ID) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ac, ok := authctx.From(r.Context())
			if !ok {
				s.writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "authentication required")
				return
			}
			if err := ac.Require(capID); err != nil {
				s.writeCapabilityDenied(w, capID)
				return
			}
			next(w, r)
		}
	}
}

// resolveEntitlements fetches the tenant's current plan and overrides and
// resolves the effective capability set. Unknown tenants resolve to no
// capabilities; authorization fails closed.
func (s *Server) resolveEntitlements(tenantID string) (string, map[capabilities.ID]bool) {
	tenant, err := s.tenantRepo.Get(tenantID)
	if err != nil || tenant == nil {
		return "", map[capabilities.ID]bool{}
	}
	return tenant.PlanID, s.planCatalog.ResolveEffective(tenant.PlanID, tenant.Overrides)
}

// impersonationToken extracts the opaque impersonation token from its
// designated request channels. The token value itself is never logged.
func impersonationToken(r *http.Request) string {
	if token := r.Header.Get(ImpersonationTokenHeader); token != "" {
		return token
	}
	return r.URL.Query().Get(ImpersonationTokenParam)
}
