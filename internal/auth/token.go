package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the admin session token travels in.
const SessionCookieName = "auth_token"

// SessionClaims are the claims carried by an admin session token.
type SessionClaims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// TokenAuth signs and verifies admin session tokens.
type TokenAuth struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenAuth creates a TokenAuth with the given signing secret and
// session lifetime.
func NewTokenAuth(secret string, ttl time.Duration) (*TokenAuth, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenAuth{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the session lifetime, used for the cookie max-age.
func (a *TokenAuth) TTL() time.Duration {
	return a.ttl
}

// Sign issues a new admin session token.
func (a *TokenAuth) Sign() (string, error) {
	now := time.Now()
	claims := SessionClaims{
		User: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks a session token's signature and expiry.
func (a *TokenAuth) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid session token")
	}
	return nil
}

// CheckCredentials compares submitted credentials against the configured
// admin account in constant time.
func CheckCredentials(username, password, wantUsername, wantPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(wantUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(wantPassword)) == 1
	return userOK && passOK
}
