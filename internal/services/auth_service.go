package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

type AuthService struct {
	Customers *repos.CustomerRepo
	Creds     Credentials
}

func NewAuthService(customers *repos.CustomerRepo, creds Credentials) *AuthService {
	return &AuthService{Customers: customers, Creds: creds}
}

type Registration struct {
	Email    string
	Name     string
	Contact  string
	Address  string
	Password string
	Confirm  string // optional; checked against Password when set
}

// Register creates a customer and returns its id.
func (s *AuthService) Register(ctx context.Context, reg Registration) (int64, error) {
	email, ok := validate.Email(reg.Email)
	if !ok {
		return 0, domain.Invalid("email", "must be at least 4 characters")
	}
	if reg.Password == "" {
		return 0, domain.Invalid("password", "is required")
	}
	if reg.Confirm != "" && reg.Confirm != reg.Password {
		return 0, domain.Invalid("password", "passwords do not match")
	}

	encoded, err := s.Creds.Hash(reg.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, domain.Invalid("password", "is too long")
		}
		return 0, fmt.Errorf("encode credential: %w", err)
	}

	id, st, err := s.Customers.Create(ctx, domain.Customer{
		Email:    email,
		Name:     reg.Name,
		Contact:  reg.Contact,
		Address:  reg.Address,
		Password: encoded,
	})
	switch st {
	case repos.Inserted:
		return id, nil
	case repos.Duplicate:
		return 0, fmt.Errorf("email %s: %w", email, domain.ErrDuplicate)
	}
	if err == nil {
		err = fmt.Errorf("register: unexpected insert status %s", st)
	}
	return 0, err
}

// Authenticate returns the customer id for a matching email and password.
// A mismatch is reported as ok=false with a nil error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (int64, bool, error) {
	c, err := s.Customers.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	ok, err := s.Creds.Verify(c.Password, password)
	if err != nil {
		return 0, false, fmt.Errorf("verify credential: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	return c.ID, true, nil
}

// Customer returns the caller's own profile.
func (s *AuthService) Customer(ctx context.Context, ident domain.Identity) (domain.Customer, error) {
	if err := authorize(ident); err != nil {
		return domain.Customer{}, err
	}
	return s.Customers.ByID(ctx, ident.CustomerID)
}

func authorize(ident domain.Identity) error {
	if !ident.Valid() {
		return domain.ErrUnauthenticated
	}
	return nil
}
