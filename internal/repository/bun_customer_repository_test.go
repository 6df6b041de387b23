package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/bunx"
	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
)

// setupTestDB opens an in-memory SQLite database with the customers table created
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	_, err = db.NewCreateTable().
		Model((*models.Customer)(nil)).
		IfNotExists().
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func newTestCustomer(email string) *models.Customer {
	return &models.Customer{
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Age:          30,
		Gender:       models.GenderFemale,
		Roles:        models.StringList{models.RoleUser},
	}
}

func TestBunCustomerRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunCustomerRepository(db)
	ctx := context.Background()

	customer := newTestCustomer("alice@example.com")
	require.NoError(t, repo.Create(ctx, customer))
	assert.NotZero(t, customer.ID)

	t.Run("get by ID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, models.StringList{models.RoleUser}, got.Roles)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, customer.ID, got.ID)
	})

	t.Run("missing ID", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestBunCustomerRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunCustomerRepository(db)
	ctx := context.Background()

	customer := newTestCustomer("bob@example.com")
	require.NoError(t, repo.Create(ctx, customer))

	exists, err := repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBunCustomerRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunCustomerRepository(db)
	ctx := context.Background()

	customer := newTestCustomer("carol@example.com")
	require.NoError(t, repo.Create(ctx, customer))

	customer.Name = "Caroline"
	customer.Age = 31
	require.NoError(t, repo.Update(ctx, customer))

	got, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caroline", got.Name)
	assert.Equal(t, 31, got.Age)

	t.Run("update missing customer", func(t *testing.T) {
		missing := newTestCustomer("gone@example.com")
		missing.ID = 9999
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrCustomerNotFound)
	})
}

func TestBunCustomerRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunCustomerRepository(db)
	ctx := context.Background()

	customer := newTestCustomer("dave@example.com")
	require.NoError(t, repo.Create(ctx, customer))

	require.NoError(t, repo.Delete(ctx, customer.ID))

	_, err := repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, customer.ID), ErrCustomerNotFound)
}

func TestBunCustomerRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunCustomerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCustomer("a@example.com")))
	require.NoError(t, repo.Create(ctx, newTestCustomer("b@example.com")))

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "a@example.com", customers[0].Email)
	assert.Equal(t, "b@example.com", customers[1].Email)
}
