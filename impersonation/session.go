package impersonation

import "time"

// Session records a privileged operator temporarily acting within a
// tenant's context. Sessions are immutable once created; they end either
// by explicit revocation or by TTL expiry, and both states are terminal.
//
// The store exclusively owns the session; callers hold only the opaque
// token. Token values must never appear in logs or error payloads.
type Session struct {
	ID         string    // Internal identifier (UUID), safe to log
	Token      string    // Opaque crypto-random handle presented by the operator
	OperatorID string    // Privileged actor who started the impersonation
	TenantID   string    // Tenant being impersonated
	CreatedAt  time.Time // When the session was created
	ExpiresAt  time.Time // CreatedAt + configured TTL; hard boundary, no renewal
}

// Expired reports whether the session has passed its expiry boundary.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
