package auth

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
)

// CredentialStore is the slice of the customer repository the verifier needs:
// resolve a login username to the stored principal record.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, keeping the latency class identical for "unknown username" and
// "wrong password" so login cannot be used to enumerate accounts.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Verifier confirms presented credentials against the credential store.
type Verifier struct {
	store CredentialStore
}

// NewVerifier creates a credential verifier backed by the given store.
func NewVerifier(store CredentialStore) *Verifier {
	return &Verifier{store: store}
}

// Authenticate verifies a username/secret pair and returns the matching
// customer record. Every failure mode collapses into ErrInvalidCredentials:
// unknown username, wrong password and store errors are indistinguishable at
// this boundary. Store errors other than a missing row are logged before
// being folded in (fail closed, no retries).
func (v *Verifier) Authenticate(ctx context.Context, username, secret string) (*models.Customer, error) {
	customer, err := v.store.GetByEmail(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			log.Printf("credential store lookup failed for login: %v", err)
		}
		// Burn a comparison so the unknown-username path costs the same
		// as a real bcrypt check.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return customer, nil
}
