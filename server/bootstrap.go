package server

import (
	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/plans"
	"github.com/jrsteele09/go-tenant-authz/tenants"
	"github.com/rs/zerolog"
)

// SeedDevTenants populates the tenant repository with demo entitlement
// records for local development. Production deployments source tenant
// plan data from the billing subsystem instead.
func SeedDevTenants(repo tenants.Repo, log zerolog.Logger) error {
	devTenants := []*tenants.Tenant{
		{
			ID:     "tenant-core",
			Name:   "Acme Studios",
			Domain: "acme.example.com",
			PlanID: plans.PlanCore,
		},
		{
			ID:     "tenant-growth",
			Name:   "Birch & Co",
			Domain: "birch.example.com",
			PlanID: plans.PlanGrowth,
		},
		{
			ID:     "tenant-overridden",
			Name:   "Cedar Collective",
			Domain: "cedar.example.com",
			PlanID: plans.PlanCore,
			Overrides: plans.Overrides{
				// Granted ad hoc by support while trialling the feature
				capabilities.FinancialAnalytics: true,
				// Revoked pending a billing dispute
				capabilities.Invoicing: false,
			},
		},
	}

	for _, tenant := range devTenants {
		if err := repo.Upsert(tenant); err != nil {
			return err
		}
		log.Debug().Str("tenant_id", tenant.ID).Str("plan_id", tenant.PlanID).Msg("seeded dev tenant")
	}
	return nil
}
