package server

import (
	"net/http"

	"github.com/jrsteele09/go-tenant-authz/authctx"
	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

type entitlementsResponse struct {
	ActingTenantID  string            `json:"acting_tenant_id"`
	PlanID          string            `json:"plan_id,omitempty"`
	IsImpersonating bool              `json:"is_impersonating"`
	Capabilities    []capabilities.ID `json:"capabilities"`
}

// EntitlementsHandler returns the caller's effective authorization
// context: the acting tenant, whether impersonation is active, and the
// granted capability list. This is the UI's data source for feature
// gating, and the sanctioned way to observe whether a supplied
// impersonation token was honoured.
func (s *Server) EntitlementsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac, ok := authctx.From(r.Context())
		if !ok {
			s.writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "authentication required")
			return
		}
		s.writeJSON(w, http.StatusOK, entitlementsResponse{
			ActingTenantID:  ac.ActingTenantID,
			PlanID:          ac.PlanID,
			IsImpersonating: ac.IsImpersonating,
			Capabilities:    ac.CapabilityList(),
		})
	}
}

// CapabilitiesHandler lists every known capability with its metadata.
func (s *Server) CapabilitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, capabilities.List())
	}
}

// PlansHandler lists the plan catalog in ascending price order.
func (s *Server) PlansHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.planCatalog.List())
	}
}

type upgradeTargetResponse struct {
	Capability capabilities.ID `json:"capability"`
	PlanID     string          `json:"plan_id,omitempty"`
	Available  bool            `json:"available"`
}

// UpgradeTargetHandler returns the cheapest plan whose base definition
// grants the requested capability, for upgrade prompts.
func (s *Server) UpgradeTargetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capID := capabilities.ID(r.URL.Query().Get("capability"))
		if capID == "" {
			s.writeError(w, http.StatusBadRequest, errors.CodeInvalidArgument, "capability query parameter is required")
			return
		}
		planID, ok := s.planCatalog.CheapestPlanGranting(capID)
		s.writeJSON(w, http.StatusOK, upgradeTargetResponse{
			Capability: capID,
			PlanID:     planID,
			Available:  ok,
		})
	}
}

// FinancialReportsHandler is a capability-gated downstream operation. The
// report content itself lives in the reporting subsystem; this handler
// demonstrates the require-capability gate in front of it.
func (s *Server) FinancialReportsHandler() http.HandlerFunc {
	gated := func(w http.ResponseWriter, r *http.Request) {
		ac, _ := authctx.From(r.Context())
		s.writeJSON(w, http.StatusOK, map[string]string{
			"tenant_id": ac.ActingTenantID,
			"report":    "financial-summary",
		})
	}
	return s.RequireCapability(capabilities.FinancialAnalytics)(gated)
}
