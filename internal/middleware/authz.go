package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/NikolaiKhriapov/full-stack-app/internal/auth"
)

// AuthzDependencies provides the collaborators needed for authorization decisions.
type AuthzDependencies struct {
	Rules *auth.Rules
}

// NewAuthzMiddleware constructs the authorization gate. It consults the
// immutable route-rule table with the request's method, path and
// authentication state; Deny is written as a generic 401 so the caller cannot
// distinguish a missing token from an expired or forged one. Denial is
// deliberately a different status than "not found": the gate never reveals
// whether the resource exists.
func NewAuthzMiddleware(deps AuthzDependencies) (func(http.Handler) http.Handler, error) {
	if deps.Rules == nil {
		return nil, errors.New("authz middleware requires route rules")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, authenticated := auth.PrincipalFromContext(r.Context())

			if deps.Rules.Authorize(r.Method, r.URL.Path, authenticated) == auth.Deny {
				log.Printf("denied %s %s: %v", r.Method, r.URL.Path, auth.ErrAuthorizationDenied)
				unauthenticated(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// unauthenticated writes the generic 401 body shared by every auth failure.
func unauthenticated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"path":          r.URL.Path,
		"message":       "unauthenticated",
		"statusCode":    http.StatusUnauthorized,
		"localDateTime": time.Now().Format(time.RFC3339),
	})
}
