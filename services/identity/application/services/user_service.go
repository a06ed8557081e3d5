package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	identitydomain "github.com/ghuser/tabshare/services/identity/domain"
	"github.com/ghuser/tabshare/services/identity/domain/models"
	"github.com/ghuser/tabshare/services/identity/domain/repositories"
)

// UserService covers account lifecycle: signup, credential checks, lookup.
// Cookie handling lives in the HTTP layer (pkg/auth); this service never
// sees a request.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService returns a UserService wired with the given repository.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Signup validates, hashes and persists a new account.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	user, err := models.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the account. Unknown email and
// wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	normalized, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, identitydomain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, normalized)
	if errors.Is(err, identitydomain.ErrUserNotFound) {
		return nil, identitydomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, identitydomain.ErrInvalidCredentials
	}
	return user, nil
}

// GetByID loads an account by its ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
