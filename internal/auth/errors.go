package auth

import "errors"

// Error kinds produced by the auth core. Callers treat every token error
// identically (deny access); the distinct kinds exist for logging only and
// must never reach the API boundary.
var (
	// ErrMalformedToken is returned when a token cannot be parsed at all
	// (wrong segment count, undecodable payload).
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenExpired is returned when a structurally valid token is past
	// its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrSignatureMismatch is returned when the recomputed signature does
	// not match the embedded one.
	ErrSignatureMismatch = errors.New("token signature mismatch")

	// ErrInvalidCredentials is returned for every login failure. Unknown
	// username and wrong password intentionally share this one value and
	// message so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthorizationDenied is returned when a route requires an
	// authenticated principal and the request has none.
	ErrAuthorizationDenied = errors.New("authorization denied")
)
