package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-tenant-authz/capabilities"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Capability       string `json:"capability,omitempty"`
	UpgradePlanID    string `json:"upgrade_plan_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, description string) {
	s.writeJSON(w, status, errorResponse{Error: code, ErrorDescription: description})
}

// writeCapabilityDenied emits the machine-checkable denial payload: the
// stable code, the capability identifier, and the cheapest plan that
// would grant it so the caller can present an upgrade prompt.
func (s *Server) writeCapabilityDenied(w http.ResponseWriter, capID capabilities.ID) {
	resp := errorResponse{
		Error:            errors.CodeCapabilityDenied,
		ErrorDescription: "plan does not include this capability",
		Capability:       string(capID),
	}
	if planID, ok := s.planCatalog.CheapestPlanGranting(capID); ok {
		resp.UpgradePlanID = planID
	}
	s.writeJSON(w, http.StatusForbidden, resp)
}
