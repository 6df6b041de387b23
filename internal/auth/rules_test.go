package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules_Authorize(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name          string
		method        string
		path          string
		authenticated bool
		expected      Decision
	}{
		{
			name:     "registration is public",
			method:   http.MethodPost,
			path:     "/api/v1/customers",
			expected: Allow,
		},
		{
			name:     "login is public",
			method:   http.MethodPost,
			path:     "/api/v1/auth/login",
			expected: Allow,
		},
		{
			name:     "profile image read is public",
			method:   http.MethodGet,
			path:     "/api/v1/customers/42/profile-image",
			expected: Allow,
		},
		{
			name:     "health check is public",
			method:   http.MethodGet,
			path:     "/health",
			expected: Allow,
		},
		{
			name:     "customer list requires auth",
			method:   http.MethodGet,
			path:     "/api/v1/customers",
			expected: Deny,
		},
		{
			name:          "customer list allowed when authenticated",
			method:        http.MethodGet,
			path:          "/api/v1/customers",
			authenticated: true,
			expected:      Allow,
		},
		{
			name:     "customer read requires auth",
			method:   http.MethodGet,
			path:     "/api/v1/customers/42",
			expected: Deny,
		},
		{
			name:     "profile image upload requires auth",
			method:   http.MethodPost,
			path:     "/api/v1/customers/42/profile-image",
			expected: Deny,
		},
		{
			name:     "delete requires auth",
			method:   http.MethodDelete,
			path:     "/api/v1/customers/42",
			expected: Deny,
		},
		{
			name:     "wildcard matches exactly one segment",
			method:   http.MethodGet,
			path:     "/api/v1/customers/42/extra/profile-image",
			expected: Deny,
		},
		{
			name:     "unknown route defaults to requires-authentication",
			method:   http.MethodGet,
			path:     "/api/v1/something-else",
			expected: Deny,
		},
		{
			name:          "unknown route allowed when authenticated",
			method:        http.MethodGet,
			path:          "/api/v1/something-else",
			authenticated: true,
			expected:      Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rules.Authorize(tt.method, tt.path, tt.authenticated))
		})
	}
}

func TestRules_FirstMatchWins(t *testing.T) {
	rules := NewRules([]RouteRule{
		{Method: http.MethodGet, Pattern: "/api/v1/reports/public", Access: AccessPublic},
		{Method: http.MethodGet, Pattern: "/api/v1/reports/**", Access: AccessAuthenticated},
	})

	assert.Equal(t, Allow, rules.Authorize(http.MethodGet, "/api/v1/reports/public", false))
	assert.Equal(t, Deny, rules.Authorize(http.MethodGet, "/api/v1/reports/private", false))
	assert.Equal(t, Allow, rules.Authorize(http.MethodGet, "/api/v1/reports/private", true))
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		matched bool
	}{
		{"/api/v1/customers", "/api/v1/customers", true},
		{"/api/v1/customers", "/api/v1/customers/42", false},
		{"/api/v1/customers/*", "/api/v1/customers/42", true},
		{"/api/v1/customers/*", "/api/v1/customers/42/profile-image", false},
		{"/api/v1/customers/*/profile-image", "/api/v1/customers/42/profile-image", true},
		{"/api/v1/customers/*/profile-image", "/api/v1/customers/profile-image", false},
		{"/api/v1/**", "/api/v1/anything/at/all", true},
		{"/api/v1/**", "/api/v1", true},
		{"/", "/", true},
		{"/", "/api", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.matched, matchPattern(tt.pattern, tt.path))
		})
	}
}
