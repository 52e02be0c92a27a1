package authctx

import (
	"context"

	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// Context is the effective authorization view computed for a single
// request: which tenant is acting and what it may do. It is computed
// fresh per request and never cached across requests, since plan data,
// overrides and impersonation state can all change between requests.
type Context struct {
	ActingTenantID  string
	PlanID          string
	IsImpersonating bool
	OperatorID      string // set only when impersonating
	Granted         map[capabilities.ID]bool
}

// Has reports whether the acting tenant's effective capability set
// includes the given capability.
func (c Context) Has(capID capabilities.ID) bool {
	return c.Granted[capID]
}

// Require returns a CapabilityDeniedError carrying the capability
// identifier if the acting tenant is not entitled to it.
func (c Context) Require(capID capabilities.ID) error {
	if c.Has(capID) {
		return nil
	}
	return &errors.CapabilityDeniedError{Capability: capID}
}

// CapabilityList returns the granted capabilities in catalog declaration
// order, for introspection payloads.
func (c Context) CapabilityList() []capabilities.ID {
	out := make([]capabilities.ID, 0, len(c.Granted))
	for _, capability := range capabilities.List() {
		if c.Granted[capability.ID] {
			out = append(out, capability.ID)
		}
	}
	return out
}

type contextKey struct{}

// With attaches the authorization context to the request context.
func With(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// From retrieves the authorization context attached by the tenant context
// middleware.
func From(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}
