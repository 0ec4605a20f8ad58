package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator validates tokens minted by the external identity provider.
// This service never issues identities; it only checks the shared-secret
// signature and reads the claims.
type Authenticator interface {
	ValidateToken(token string) (*jwt.Token, error)
}
