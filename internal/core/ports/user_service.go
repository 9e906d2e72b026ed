package ports

import (
	"context"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

// RegisterInput carries the data needed to register a new user.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is the full-replacement payload for updating a user.
type UpdateUserInput struct {
	Name    string
	Surname string
	Email   string
	Role    string
	Active  bool
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User  *domain.User
	Token string
}

// UserService defines the authentication and user-management use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	SearchByName(ctx context.Context, text string) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
	SetActive(ctx context.Context, id string, active bool) error
	// SoftDelete marks the user inactive; Purge removes the record permanently.
	SoftDelete(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	// RecoverPassword mints a one-time reset token for the account;
	// ResetPassword consumes it and stores the new password.
	RecoverPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}
