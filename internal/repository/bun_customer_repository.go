package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
)

// BunCustomerRepository implements CustomerRepository using Bun ORM
type BunCustomerRepository struct {
	db *bun.DB
}

// NewBunCustomerRepository creates a new Bun-based customer repository
func NewBunCustomerRepository(db *bun.DB) *BunCustomerRepository {
	return &BunCustomerRepository{db: db}
}

// Create inserts a new customer into the database
func (r *BunCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	_, err := r.db.NewInsert().
		Model(customer).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by their ID
func (r *BunCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := new(models.Customer)
	err := r.db.NewSelect().
		Model(customer).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by ID: %w", err)
	}
	return customer, nil
}

// GetByEmail retrieves a customer by their email (the login username)
func (r *BunCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer := new(models.Customer)
	err := r.db.NewSelect().
		Model(customer).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return customer, nil
}

// ExistsByID reports whether a customer with the given ID exists
func (r *BunCustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.Customer)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check customer exists by ID: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether a customer with the given email exists
func (r *BunCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.Customer)(nil)).
		Where("email = ?", email).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check customer exists by email: %w", err)
	}
	return exists, nil
}

// Update updates an existing customer
func (r *BunCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(customer).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer by their ID
func (r *BunCustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Customer)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// List retrieves all customers ordered by ID
func (r *BunCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.NewSelect().
		Model(&customers).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
