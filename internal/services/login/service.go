// Package login ties the credential verifier and the token codec together
// into the single "log this principal in" entry point.
package login

import (
	"context"
	"fmt"

	"github.com/NikolaiKhriapov/full-stack-app/internal/auth"
	"github.com/NikolaiKhriapov/full-stack-app/internal/services/customer"
)

// Service is the login orchestrator.
type Service struct {
	verifier *auth.Verifier
	codec    *auth.Codec
}

// NewService creates a login service over the given verifier and codec.
func NewService(verifier *auth.Verifier, codec *auth.Codec) *Service {
	return &Service{verifier: verifier, codec: codec}
}

// Login verifies the credentials and, on success, issues a fresh token bound
// to the customer's email subject and role claims, returning it with the
// redacted customer view. Credential failures surface as
// auth.ErrInvalidCredentials untouched; callers map it to a generic
// unauthorized response without detail.
func (s *Service) Login(ctx context.Context, username, password string) (string, customer.View, error) {
	principal, err := s.verifier.Authenticate(ctx, username, password)
	if err != nil {
		return "", customer.View{}, err
	}

	token, err := s.codec.IssueToken(principal.Email, principal.Roles)
	if err != nil {
		return "", customer.View{}, fmt.Errorf("issue token: %w", err)
	}

	return token, customer.ViewFromModel(principal), nil
}
