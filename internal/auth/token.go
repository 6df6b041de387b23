package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified payload of an issued token.
type Claims struct {
	// Subject is the stable principal identifier (the customer's email).
	Subject string
	// Roles are the role claims embedded at issuance.
	Roles []string
	// IssuedAt and ExpiresAt are whole-second Unix timestamps.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed bearer tokens.
//
// The codec is pure computation over an immutable signing key and TTL; it
// performs no I/O and holds no mutable state, so a single instance is shared
// safely across concurrent requests. Tokens are never revoked individually;
// they stop validating only when their expiry passes.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodec creates a token codec with the process-wide signing key and the
// fixed token lifetime.
func NewCodec(signingKey string, ttl time.Duration) *Codec {
	return &Codec{
		key: []byte(signingKey),
		ttl: ttl,
		now: time.Now,
	}
}

// IssueToken builds and signs a token for the given subject and role claims.
// issued-at is now, expiry is now + TTL, both truncated to whole seconds.
func (c *Codec) IssueToken(subject string, roles []string) (string, error) {
	now := c.now().Truncate(time.Second)
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseClaims verifies the token's signature and expiry and returns its
// claims. Failures are classified into ErrMalformedToken, ErrTokenExpired and
// ErrSignatureMismatch; anything unclassifiable is reported as malformed
// (fail closed). The underlying HMAC comparison is constant-time.
func (c *Codec) ParseClaims(tokenString string) (*Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) {
			return c.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureMismatch
		default:
			return nil, ErrMalformedToken
		}
	}

	// Expiry presence is enforced by WithExpirationRequired; issued-at is
	// not, so a token without iat must be rejected here rather than panic.
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrMalformedToken
	}

	return &Claims{
		Subject:   claims.Subject,
		Roles:     claims.Roles,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// VerifyToken reports whether the token is authentic, unexpired and bound to
// the expected subject. Any parse or verification failure returns false.
func (c *Codec) VerifyToken(tokenString, expectedSubject string) bool {
	claims, err := c.ParseClaims(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject parses the payload without validating signature or expiry.
// Only meaningful after ParseClaims has succeeded on the same token.
func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return "", ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}
