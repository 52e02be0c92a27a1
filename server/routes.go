package server

func (s *Server) initRoutes() {
	// Impersonation lifecycle (super admin only)
	s.RegisterRouteHandler("POST "+RouteAdminImpersonation,
		ChainMiddleware(s.StartImpersonationHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAdminImpersonation,
		ChainMiddleware(s.EndImpersonationHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAdminImpersonationCount,
		ChainMiddleware(s.ImpersonationCountHandler(), s.AdminMiddleware()...))

	// Tenant-scoped API (authenticated, tenant context resolved per request)
	s.RegisterRouteHandler("GET "+RouteAPIEntitlements,
		ChainMiddleware(s.EntitlementsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICapabilities,
		ChainMiddleware(s.CapabilitiesHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIPlans,
		ChainMiddleware(s.PlansHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPIUpgradeTarget,
		ChainMiddleware(s.UpgradeTargetHandler(), s.APIMiddleware()...))

	// Capability-gated operations
	s.RegisterRouteHandler("GET "+RouteAPIFinancialReports,
		ChainMiddleware(s.FinancialReportsHandler(), s.APIMiddleware()...))
}
