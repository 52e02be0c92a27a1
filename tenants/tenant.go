package tenants

import "github.com/jrsteele09/go-tenant-authz/plans"

// Tenant represents an organization on the platform together with its
// current subscription entitlement. The plan identifier and override map
// are sourced from the billing subsystem; this service only consumes them.
type Tenant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Domain    string          `json:"domain"`
	PlanID    string          `json:"plan_id"`
	Overrides plans.Overrides `json:"overrides,omitempty"` // per-tenant capability exceptions, replace plan decisions
}
