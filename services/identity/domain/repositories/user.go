package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/tabshare/services/identity/domain/models"
)

// UserRepository is the persistence interface for user accounts.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Save persists a new user. A unique violation on the email index is
	// returned as domain.ErrEmailTaken.
	Save(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail looks a user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
