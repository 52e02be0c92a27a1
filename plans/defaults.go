package plans

import "github.com/jrsteele09/go-tenant-authz/capabilities"

// Built-in plan tiers used when no external catalog file is configured.
const (
	PlanCore   = "core"
	PlanGrowth = "growth"
	PlanScale  = "scale"
)

// DefaultCatalog returns the built-in three-tier catalog.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		&PlanDefinition{
			ID:         PlanCore,
			Name:       "Core",
			PriceCents: 2900,
			Features: map[capabilities.ID]*FeatureEntry{
				capabilities.Analytics:      {Status: StatusIncluded, Name: "Analytics"},
				capabilities.Invoicing:      {Status: StatusIncluded, Name: "Invoicing"},
				capabilities.CalendarExport: {Status: StatusIncluded, Name: "Calendar export"},
				capabilities.PaymentLinks:   {Status: StatusAddOn, Name: "Payment links"},
			},
		},
		&PlanDefinition{
			ID:         PlanGrowth,
			Name:       "Growth",
			PriceCents: 7900,
			Features: map[capabilities.ID]*FeatureEntry{
				capabilities.Analytics:          {Status: StatusIncluded, Name: "Analytics"},
				capabilities.FinancialAnalytics: {Status: StatusIncluded, Name: "Financial analytics"},
				capabilities.Invoicing:          {Status: StatusIncluded, Name: "Invoicing"},
				capabilities.CalendarExport:     {Status: StatusIncluded, Name: "Calendar export"},
				capabilities.PaymentLinks:       {Status: StatusIncluded, Name: "Payment links"},
				capabilities.APIAccess:          {Status: StatusIncluded, Name: "API access"},
			},
		},
		&PlanDefinition{
			ID:         PlanScale,
			Name:       "Scale",
			PriceCents: 19900,
			Features: map[capabilities.ID]*FeatureEntry{
				capabilities.Analytics:          {Status: StatusIncluded, Name: "Analytics"},
				capabilities.FinancialAnalytics: {Status: StatusIncluded, Name: "Financial analytics"},
				capabilities.Invoicing:          {Status: StatusIncluded, Name: "Invoicing"},
				capabilities.CalendarExport:     {Status: StatusIncluded, Name: "Calendar export"},
				capabilities.PaymentLinks:       {Status: StatusIncluded, Name: "Payment links"},
				capabilities.APIAccess:          {Status: StatusIncluded, Name: "API access"},
				capabilities.CustomBranding:     {Status: StatusIncluded, Name: "Custom branding"},
				capabilities.PrioritySupport:    {Status: StatusIncluded, Name: "Priority support"},
			},
		},
	)
	if err != nil {
		// Built-in definitions are validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return catalog
}
