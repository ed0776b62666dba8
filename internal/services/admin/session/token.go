package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "imic-admin"

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// ErrTokenExpired is returned with the session id for a correctly signed
// token past its expiry. It matches ErrInvalidToken.
var ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)

// TokenCodec signs and verifies the HS256 cookie token that names a session.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec returns a codec keyed with secret.
func NewTokenCodec(secret []byte, now func() time.Time) (*TokenCodec, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes")
	}
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: append([]byte(nil), secret...), now: now}, nil
}

// Issue signs a token for s.
func (c *TokenCodec) Issue(s Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   s.Username,
		ID:        s.ID,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the session id it names. An expired
// token still yields its id alongside ErrTokenExpired so the caller can
// discard the session.
func (c *TokenCodec) Parse(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	switch {
	case claims.Issuer != tokenIssuer:
		return "", fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	case claims.ID == "":
		return "", fmt.Errorf("%w: missing jti", ErrInvalidToken)
	case claims.ExpiresAt == nil:
		return "", fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return claims.ID, ErrTokenExpired
	}
	return claims.ID, nil
}
