package auth

import "strings"

// Access is the rule attached to a route: open to anyone, or only to requests
// carrying an authenticated principal. There is no role-level distinction.
type Access int

const (
	// AccessPublic allows the request regardless of authentication state.
	AccessPublic Access = iota
	// AccessAuthenticated allows the request only for authenticated principals.
	AccessAuthenticated
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow lets the request proceed to business logic.
	Allow Decision = iota
	// Deny rejects the request before business logic runs.
	Deny
)

// RouteRule maps an HTTP method and path pattern to an access rule.
//
// Pattern segments are matched literally except "*", which matches exactly
// one segment, and a trailing "**", which matches any remaining suffix
// (including none). Rules are evaluated in declaration order; the first
// match wins.
type RouteRule struct {
	Method  string
	Pattern string
	Access  Access
}

// Rules is an immutable ordered route-rule table. It is built once at process
// start and read concurrently without locking.
type Rules struct {
	rules []RouteRule
}

// NewRules builds a rule table. The slice is copied; later mutation of the
// argument does not affect the table.
func NewRules(rules []RouteRule) *Rules {
	return &Rules{rules: append([]RouteRule(nil), rules...)}
}

// DefaultRules returns the route security table for the customer API:
// registration, login, profile-image reads and the health check are public,
// everything else requires authentication.
func DefaultRules() *Rules {
	return NewRules([]RouteRule{
		{Method: "POST", Pattern: "/api/v1/customers", Access: AccessPublic},
		{Method: "POST", Pattern: "/api/v1/auth/login", Access: AccessPublic},
		{Method: "GET", Pattern: "/api/v1/customers/*/profile-image", Access: AccessPublic},
		{Method: "GET", Pattern: "/health", Access: AccessPublic},
	})
}

// Authorize decides whether a request may proceed. A matching public rule
// allows unconditionally; a matching authenticated rule allows only when the
// request carries a principal. No matching rule defaults to
// requires-authentication (secure by default).
func (r *Rules) Authorize(method, path string, authenticated bool) Decision {
	access := AccessAuthenticated
	for _, rule := range r.rules {
		if rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			access = rule.Access
			break
		}
	}

	if access == AccessPublic || authenticated {
		return Allow
	}
	return Deny
}

// matchPattern matches a path against a pattern segment by segment.
func matchPattern(pattern, path string) bool {
	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patSegs {
		if seg == "**" {
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return len(patSegs) == len(pathSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
