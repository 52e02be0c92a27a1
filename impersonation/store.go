package impersonation

// Store defines the interface for impersonation session storage. The
// in-memory implementation is process-local; a deployment scaling across
// processes substitutes a shared TTL-capable backing store behind this
// interface without touching the middleware.
//
// All operations are safe to call concurrently from many simultaneous
// requests.
type Store interface {
	// Start creates a brand-new session for the operator/tenant pair and
	// returns it. Every call creates a new session even if the pair
	// already has one active. The operator must already have been
	// authenticated as super-privileged by the caller; the store only
	// records the grant.
	Start(operatorID, tenantID string) (Session, error)

	// Validate returns the session for the token only if it exists and
	// has not expired. An expired session found during lookup is evicted
	// as a side effect. Missing, expired and ended tokens all yield
	// ok=false; none of these are errors.
	Validate(token string) (Session, bool)

	// End removes the session if present and reports whether it existed.
	// Ending a non-existent or already-ended token is not an error.
	End(token string) bool

	// SweepExpired removes every session past its expiry and returns how
	// many were evicted.
	SweepExpired() int

	// Count returns the number of active sessions.
	Count() int
}
