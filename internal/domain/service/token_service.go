package service

import (
	"time"

	"marketplace/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Each wraps ErrTokenRejected so callers that do
// not care about the reason can test for that single sentinel.
var (
	ErrTokenRejected         = errors.New("token rejected")
	ErrTokenMalformed        = errors.Wrap(ErrTokenRejected, "token is malformed")
	ErrTokenSignatureInvalid = errors.Wrap(ErrTokenRejected, "token signature is invalid")
	ErrTokenExpired          = errors.Wrap(ErrTokenRejected, "token is expired")
)

// Claims defines the claims carried by an access token. Subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// IssuedToken is a freshly signed access token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	// IssueToken signs a token for the subject that expires after the configured TTL.
	IssueToken(subject string) (*IssuedToken, error)

	// VerifyToken returns the claims of a valid token, or one of
	// ErrTokenMalformed, ErrTokenSignatureInvalid, ErrTokenExpired.
	VerifyToken(tokenString string) (*Claims, error)
}
