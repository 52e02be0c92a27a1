package auth

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// OIDCAuthenticator verifies Bearer tokens against an external OpenID
// Connect provider via discovery. Used when the platform's auth layer is
// an upstream IdP rather than the shared-secret JWT issuer.
type OIDCAuthenticator struct {
	verifier *oidc.IDTokenVerifier
}

var _ Authenticator = (*OIDCAuthenticator)(nil)

// NewOIDCAuthenticator discovers the issuer's configuration and prepares
// a verifier for tokens addressed to clientID.
func NewOIDCAuthenticator(ctx context.Context, issuer, clientID string) (*OIDCAuthenticator, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewOIDCAuthenticator] provider discovery for %s", issuer)
	}
	return &OIDCAuthenticator{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Authenticate verifies the Bearer token's signature against the
// provider's JWKS and maps its claims onto an Identity.
func (a *OIDCAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	tokenString, ok := BearerToken(r)
	if !ok {
		return Identity{}, errors.ErrUnauthorized
	}

	idToken, err := a.verifier.Verify(r.Context(), tokenString)
	if err != nil {
		return Identity{}, errors.Wrapf(errors.ErrInvalidToken, "oidc verify")
	}

	var claims struct {
		Tenant string   `json:"tenant"`
		Roles  []string `json:"roles"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, errors.Wrapf(errors.ErrInvalidToken, "oidc claims")
	}

	identity := Identity{
		UserID:   idToken.Subject,
		TenantID: claims.Tenant,
	}
	for _, role := range claims.Roles {
		identity.Roles = append(identity.Roles, RoleType(role))
	}
	return identity, nil
}
