package auth

import "context"

// AuthenticatedPrincipal captures identity metadata propagated through the
// request context. It is created by the authentication middleware, read by the
// authorization gate and handlers, and discarded with the request.
type AuthenticatedPrincipal struct {
	// Subject is the stable identifier embedded in the token (the email).
	Subject string
	// CustomerID references the backing customers row.
	CustomerID int64
	// Name is the customer's display name.
	Name string
	// Roles lists the role claims taken from the token payload. They are
	// deliberately not re-fetched from the store at request time.
	Roles []string
}

type principalContextKey struct{}

// SetPrincipalContext stores the authenticated principal on the context for
// downstream consumers.
func SetPrincipalContext(ctx context.Context, principal AuthenticatedPrincipal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
// The second return is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (AuthenticatedPrincipal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(AuthenticatedPrincipal)
	return principal, ok
}
