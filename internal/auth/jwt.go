package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"parkspot/internal/policy"
)

type JWTAuthenticator struct {
	secret string
	aud    string
	iss    string
}

func NewJWTAuthenticator(secret, aud, iss string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, aud: aud, iss: iss}
}

// ValidateToken checks signature, expiry, issuer and audience.
func (a *JWTAuthenticator) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.iss),
		jwt.WithAudience(a.aud),
	)
}

// GenerateToken mints a token with the identity provider's claim shape.
// Local development and tests use it; production tokens come from the IdP.
func (a *JWTAuthenticator) GenerateToken(userID int64, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"is_admin": isAdmin,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"iss":      a.iss,
		"aud":      a.aud,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.secret))
}

// CallerFromToken builds the explicit caller identity out of a validated
// token's claims: `sub` is the opaque user id, `is_admin` the capability
// flag supplied by the identity provider.
func CallerFromToken(token *jwt.Token) (policy.Caller, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Caller{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return policy.Caller{}, fmt.Errorf("token has no subject: %w", err)
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return policy.Caller{}, fmt.Errorf("invalid subject %q", sub)
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return policy.Caller{ID: id, IsAdmin: isAdmin}, nil
}
