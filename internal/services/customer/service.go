package customer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
)

var (
	// ErrEmailTaken is returned when registering or updating to an email
	// that already belongs to another customer.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNoChanges is returned when a partial update contains no effective
	// field changes.
	ErrNoChanges = errors.New("no data changes found")

	// ErrProfileImageNotFound is returned when a customer has no stored
	// profile image.
	ErrProfileImageNotFound = errors.New("profile image not found")

	// ErrValidation wraps request validation failures.
	ErrValidation = errors.New("validation failed")
)

// FileStore is the profile-image storage collaborator.
type FileStore interface {
	PutProfileImage(customerID int64, data []byte, originalName string) (string, error)
	GetProfileImage(path string) ([]byte, error)
	Remove(path string) error
}

// RegistrationRequest carries the fields for creating a customer.
type RegistrationRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Age      int           `json:"age"`
	Gender   models.Gender `json:"gender"`
}

// UpdateRequest carries a partial update. Nil fields are left untouched;
// the password is never updatable through this path.
type UpdateRequest struct {
	Name   *string        `json:"name"`
	Email  *string        `json:"email"`
	Age    *int           `json:"age"`
	Gender *models.Gender `json:"gender"`
}

// View is the redacted customer representation returned to clients. It never
// carries the password hash or the stored image path.
type View struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Age      int           `json:"age"`
	Gender   models.Gender `json:"gender"`
	Roles    []string      `json:"roles"`
	Username string        `json:"username"`
}

// ViewFromModel redacts a customer record into its public view.
func ViewFromModel(c *models.Customer) View {
	return View{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Age:      c.Age,
		Gender:   c.Gender,
		Roles:    append([]string(nil), c.Roles...),
		Username: c.Username(),
	}
}

// Service implements the customer CRUD business logic.
type Service struct {
	customers repository.CustomerRepository
	files     FileStore
}

// NewService creates a customer service.
func NewService(customers repository.CustomerRepository, files FileStore) *Service {
	return &Service{customers: customers, files: files}
}

// List returns all customers as redacted views.
func (s *Service) List(ctx context.Context) ([]View, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(customers))
	for i := range customers {
		views = append(views, ViewFromModel(&customers[i]))
	}
	return views, nil
}

// Get returns a single customer view by ID.
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	return ViewFromModel(customer), nil
}

// Create registers a new customer. The password is bcrypt-hashed before it
// touches the repository and every new customer starts with the user role.
func (s *Service) Create(ctx context.Context, req RegistrationRequest) (View, error) {
	if err := validateRegistration(req); err != nil {
		return View{}, err
	}

	taken, err := s.customers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return View{}, err
	}
	if taken {
		return View{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return View{}, fmt.Errorf("hash password: %w", err)
	}

	customer := &models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Age:          req.Age,
		Gender:       req.Gender,
		Roles:        models.StringList{models.RoleUser},
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return View{}, err
	}

	return ViewFromModel(customer), nil
}

// Update applies a partial update, persisting only when at least one field
// actually changed. An email change re-checks uniqueness.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (View, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}

	changes := false

	if req.Name != nil && *req.Name != customer.Name {
		customer.Name = *req.Name
		changes = true
	}
	if req.Email != nil && *req.Email != customer.Email {
		taken, err := s.customers.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return View{}, err
		}
		if taken {
			return View{}, ErrEmailTaken
		}
		customer.Email = *req.Email
		changes = true
	}
	if req.Age != nil && *req.Age != customer.Age {
		if *req.Age <= 0 {
			return View{}, fmt.Errorf("%w: age must be positive", ErrValidation)
		}
		customer.Age = *req.Age
		changes = true
	}
	if req.Gender != nil && *req.Gender != customer.Gender {
		if !req.Gender.Valid() {
			return View{}, fmt.Errorf("%w: unknown gender", ErrValidation)
		}
		customer.Gender = *req.Gender
		changes = true
	}

	if !changes {
		return View{}, ErrNoChanges
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return View{}, err
	}
	return ViewFromModel(customer), nil
}

// Delete removes a customer by ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrCustomerNotFound
	}
	return s.customers.Delete(ctx, id)
}

// GetProfileImage reads the stored profile image for a customer.
func (s *Service) GetProfileImage(ctx context.Context, id int64) ([]byte, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.ProfileImage == nil || *customer.ProfileImage == "" {
		return nil, ErrProfileImageNotFound
	}
	return s.files.GetProfileImage(*customer.ProfileImage)
}

// UpdateProfileImage replaces a customer's profile image. The previous file,
// if any, is removed best-effort; a failed removal never blocks the upload.
func (s *Service) UpdateProfileImage(ctx context.Context, id int64, data []byte, originalName string) error {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if customer.ProfileImage != nil && *customer.ProfileImage != "" {
		if err := s.files.Remove(*customer.ProfileImage); err != nil {
			log.Printf("failed to remove previous profile image for customer %d: %v", id, err)
		}
	}

	path, err := s.files.PutProfileImage(id, data, originalName)
	if err != nil {
		return fmt.Errorf("store profile image: %w", err)
	}

	customer.ProfileImage = &path
	return s.customers.Update(ctx, customer)
}

func validateRegistration(req RegistrationRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case req.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case req.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrValidation)
	case !req.Gender.Valid():
		return fmt.Errorf("%w: unknown gender", ErrValidation)
	}
	return nil
}
