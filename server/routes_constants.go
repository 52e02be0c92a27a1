package server

const (
	// Admin surface (super admin or operator key)
	RouteAdminImpersonation      = "/admin/impersonation"
	RouteAdminImpersonationCount = "/admin/impersonation/count"

	// API surface (any authenticated caller)
	RouteAPIEntitlements     = "/api/entitlements"
	RouteAPICapabilities     = "/api/capabilities"
	RouteAPIPlans            = "/api/plans"
	RouteAPIUpgradeTarget    = "/api/plans/upgrade-target"
	RouteAPIFinancialReports = "/api/reports/financial"
)

// ImpersonationTokenHeader carries the opaque impersonation token on
// ordinary API requests. The query parameter form exists for clients
// that cannot set headers.
const (
	ImpersonationTokenHeader = "X-Impersonation-Token"
	ImpersonationTokenParam  = "impersonation_token"
)
