package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/NikolaiKhriapov/full-stack-app/internal/auth"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
)

// storeLookupTimeout bounds the single credential-store lookup performed per
// request. A timeout is treated as an authentication failure, never as
// success (fail closed).
const storeLookupTimeout = 5 * time.Second

// AuthnDependencies bundles collaborators required by the authentication middleware.
type AuthnDependencies struct {
	Codec     *auth.Codec
	Customers auth.CredentialStore
}

// NewAuthnMiddleware constructs the request authenticator.
//
// Per request it checks the bearer header, verifies the token signature and
// expiry, re-resolves the subject in the customer store and attaches the
// principal to the request context. A failure at any step leaves the
// request anonymous and passes it on; the authorization gate downstream
// decides whether anonymous access is acceptable for the route. No error
// response is written here and nothing is retried.
func NewAuthnMiddleware(deps AuthnDependencies) (func(http.Handler) http.Handler, error) {
	if deps.Codec == nil {
		return nil, errors.New("authn middleware requires token codec")
	}
	if deps.Customers == nil {
		return nil, errors.New("authn middleware requires customer store")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := deps.Codec.ParseClaims(tokenString)
			if err != nil {
				// Kind is logged for observability; the caller only
				// ever sees the request treated as anonymous.
				log.Printf("rejected bearer token for %s %s: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			// Re-resolve the subject: a customer deleted after token
			// issuance must not authenticate with a stale token.
			lookupCtx, cancel := context.WithTimeout(r.Context(), storeLookupTimeout)
			customer, err := deps.Customers.GetByEmail(lookupCtx, claims.Subject)
			cancel()
			if err != nil {
				if !errors.Is(err, repository.ErrCustomerNotFound) {
					log.Printf("customer lookup failed for subject %s: %v", claims.Subject, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Roles come from the token payload, not from the store,
			// so the token stays the single trust boundary.
			principal := auth.AuthenticatedPrincipal{
				Subject:    claims.Subject,
				CustomerID: customer.ID,
				Name:       customer.Name,
				Roles:      claims.Roles,
			}
			ctx := auth.SetPrincipalContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// bearerToken extracts the bearer credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	tokenString = strings.TrimSpace(tokenString)
	return tokenString, tokenString != ""
}
