package auth

import (
	"net/http"

	"github.com/jrsteele09/go-tenant-authz/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// OperatorKeyHeader carries a platform operator's API key. Operator keys
// are a break-glass credential for the support tooling that starts
// impersonation sessions; they always map to a super-admin identity with
// no tenant of their own.
const OperatorKeyHeader = "X-Operator-Key"

// OperatorKeyAuthenticator validates operator API keys against a fixed
// set of bcrypt hashes supplied by configuration. Raw keys are never
// stored.
type OperatorKeyAuthenticator struct {
	keyHashes []string
}

var _ Authenticator = (*OperatorKeyAuthenticator)(nil)

// NewOperatorKeyAuthenticator creates an authenticator for the given
// bcrypt key hashes.
func NewOperatorKeyAuthenticator(keyHashes []string) *OperatorKeyAuthenticator {
	return &OperatorKeyAuthenticator{keyHashes: keyHashes}
}

// Authenticate checks the operator key header against the configured
// hashes.
func (a *OperatorKeyAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	key := r.Header.Get(OperatorKeyHeader)
	if key == "" {
		return Identity{}, errors.ErrUnauthorized
	}
	for _, hash := range a.keyHashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return Identity{
				UserID: "platform-operator",
				Roles:  []RoleType{RoleSuperAdmin},
			}, nil
		}
	}
	return Identity{}, errors.ErrUnauthorized
}

// HashOperatorKey produces the bcrypt hash stored in configuration for a
// raw operator key.
func HashOperatorKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(bytes), err
}
