package auth

import (
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// JWTAuthenticator validates HS256-signed access tokens issued by the
// platform's auth layer. Claims: "sub" (user ID), "tenant" (the caller's
// own tenant) and "roles".
type JWTAuthenticator struct {
	secret []byte
}

var _ Authenticator = (*JWTAuthenticator)(nil)

// NewJWTAuthenticator creates an authenticator for tokens signed with the
// shared secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate verifies the Bearer token's signature and expiry and maps
// its claims onto an Identity.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	tokenString, ok := BearerToken(r)
	if !ok {
		return Identity{}, errors.ErrUnauthorized
	}

	claims := jwtlib.MapClaims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidToken
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{}, errors.ErrInvalidToken
	}

	identity := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		identity.UserID = sub
	}
	if tenant, ok := claims["tenant"].(string); ok {
		identity.TenantID = tenant
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, rawRole := range rawRoles {
			if role, ok := rawRole.(string); ok {
				identity.Roles = append(identity.Roles, RoleType(role))
			}
		}
	}
	if identity.UserID == "" {
		return Identity{}, errors.ErrInvalidToken
	}
	return identity, nil
}

// CreateAccessToken signs an access token for the given identity. Used by
// the local development bootstrap and by tests; production tokens come
// from the platform's auth layer.
func CreateAccessToken(secret string, identity Identity, expiry time.Duration) (string, error) {
	roles := make([]string, 0, len(identity.Roles))
	for _, role := range identity.Roles {
		roles = append(roles, string(role))
	}
	claims := jwtlib.MapClaims{
		"sub":    identity.UserID,
		"tenant": identity.TenantID,
		"roles":  roles,
		"iat":    int64(NowTimeFunc().Unix()),
		"exp":    int64(NowTimeFunc().Add(expiry).Unix()),
		"jti":    uuid.New().String(),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrapf(err, "[CreateAccessToken] signing")
	}
	return signed, nil
}
