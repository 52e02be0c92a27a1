package config

import "time"

type SecurityConfig interface {
	GetImpersonationTTL() time.Duration
	GetSweepInterval() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetImpersonationTTL is the fixed lifetime of every impersonation
// session. Expiry is a hard boundary; operators needing more time start a
// new session.
func (Security) GetImpersonationTTL() time.Duration {
	if ttl, err := time.ParseDuration(GetEnv("IMPERSONATION_TTL", "")); err == nil && ttl > 0 {
		return ttl
	}
	return 4 * time.Hour
}

// GetSweepInterval controls how often the background sweeper evicts
// expired sessions.
func (Security) GetSweepInterval() time.Duration {
	if interval, err := time.ParseDuration(GetEnv("IMPERSONATION_SWEEP_INTERVAL", "")); err == nil && interval > 0 {
		return interval
	}
	return 5 * time.Minute
}
