package config

import "strings"

type AuthConfig interface {
	GetJWTSecret() string
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOperatorKeyHashes() []string
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetJWTSecret is the shared HS256 secret for platform-issued access
// tokens.
func (Auth) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "dev-only-secret")
}

// GetOIDCIssuer, when set, enables token verification against an external
// OpenID Connect provider instead of the shared-secret issuer.
func (Auth) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (Auth) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

// GetOperatorKeyHashes returns the bcrypt hashes of accepted operator API
// keys, comma separated in the environment. Raw keys are never configured.
func (Auth) GetOperatorKeyHashes() []string {
	raw := GetEnv("OPERATOR_KEY_HASHES", "")
	if raw == "" {
		return nil
	}
	var hashes []string
	for _, hash := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(hash); trimmed != "" {
			hashes = append(hashes, trimmed)
		}
	}
	return hashes
}
