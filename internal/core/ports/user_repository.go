package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials.
// Implementations must treat emails case-insensitively; the backing store's
// unique constraint is the authoritative guard against duplicate emails, and
// duplicate writes surface as domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByRole(ctx context.Context, role string) ([]*domain.User, error)
	// SearchByName matches the text as a substring of name or surname.
	SearchByName(ctx context.Context, text string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the record permanently.
	Delete(ctx context.Context, id string) error
}
