package repository

import (
	"context"
	"errors"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
)

// ErrCustomerNotFound is returned when a customer does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository exposes persistence operations for customers.
//
// It is also the Credential Store consumed by the auth core: GetByEmail
// resolves a login username to the stored principal record.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Customer, error)
}
