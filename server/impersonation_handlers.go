package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

type startImpersonationRequest struct {
	TenantID string `json:"tenant_id"`
}

type startImpersonationResponse struct {
	Token     string    `json:"token"`
	TenantID  string    `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type endImpersonationRequest struct {
	Token string `json:"token"`
}

// StartImpersonationHandler issues a new impersonation session for the
// requesting operator. Every call creates a fresh session; callers that
// care about double-starting must track their own tokens.
func (s *Server) StartImpersonationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())

		var req startImpersonationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, errors.CodeInvalidArgument, "malformed request body")
			return
		}

		session, err := s.impersonations.Start(identity.UserID, req.TenantID)
		if err != nil {
			if errors.Is(err, errors.ErrMissingTenant) {
				s.writeError(w, http.StatusBadRequest, errors.CodeInvalidArgument, "tenant_id is required")
				return
			}
			s.log.Error().Err(err).Msg("failed to start impersonation session")
			s.writeError(w, http.StatusInternalServerError, "internal_error", "could not start impersonation")
			return
		}

		// Log by session ID only; the token is the caller's secret.
		s.log.Info().
			Str("session_id", session.ID).
			Str("operator_id", session.OperatorID).
			Str("tenant_id", session.TenantID).
			Time("expires_at", session.ExpiresAt).
			Msg("impersonation session started")

		s.writeJSON(w, http.StatusCreated, startImpersonationResponse{
			Token:     session.Token,
			TenantID:  session.TenantID,
			ExpiresAt: session.ExpiresAt,
		})
	}
}

// EndImpersonationHandler revokes a session. Acknowledges regardless of
// whether the token still existed; revocation is idempotent.
func (s *Server) EndImpersonationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req endImpersonationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, errors.CodeInvalidArgument, "malformed request body")
			return
		}

		existed := s.impersonations.End(req.Token)
		if existed {
			s.log.Info().Msg("impersonation session ended")
		}
		s.writeJSON(w, http.StatusOK, map[string]bool{"ended": existed})
	}
}

// ImpersonationCountHandler exposes the active-session count for
// operational visibility.
func (s *Server) ImpersonationCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]int{"active": s.impersonations.Count()})
	}
}
