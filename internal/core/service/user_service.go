package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/labworks/clinical-labs-api/internal/api/metrics"
	"github.com/labworks/clinical-labs-api/internal/auth"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

const recoveryTokenTTL = 15 * time.Minute

// UserService implements registration, login and user management.
type UserService struct {
	repo     ports.UserRepository
	codec    *auth.Codec
	recovery ports.RecoveryTokenStore
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, codec *auth.Codec, recovery ports.RecoveryTokenStore, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, codec: codec, recovery: recovery, logger: logger}
}

// Register creates a new active account. Email uniqueness is case-insensitive:
// the address is normalised to lower case here, and the repository's unique
// index is the authoritative guard against concurrent duplicates.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password and issues a 24-hour token.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if !user.Active {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrInactiveAccount
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{User: user, Token: token}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]*domain.User, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *UserService) SearchByName(ctx context.Context, text string) ([]*domain.User, error) {
	return s.repo.SearchByName(ctx, text)
}

// Update replaces the mutable fields. A changed email colliding with a
// different record is rejected.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if email != user.Email {
		if other, err := s.repo.FindByEmail(ctx, email); err == nil && other != nil && other.ID != id {
			return nil, domain.ErrDuplicateEmail
		}
	}

	user.Name = input.Name
	user.Surname = input.Surname
	user.Email = email
	user.Role = input.Role
	user.Active = input.Active

	return s.repo.Update(ctx, user)
}

// ChangePassword verifies the current password and stores a new hash. Format
// policy on the new password is enforced by the transport layer.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	_, err = s.repo.Update(ctx, user)
	return err
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Active = active
	_, err = s.repo.Update(ctx, user)
	return err
}

func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	return s.SetActive(ctx, id, false)
}

// Purge removes the record permanently. Irreversible; admin only, enforced at
// the route level.
func (s *UserService) Purge(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RecoverPassword mints a one-time reset token for an active account and
// stores it with a 15-minute expiry. Delivery is out of scope; the token is
// returned to the caller.
func (s *UserService) RecoverPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", domain.ErrInactiveAccount
	}

	token := uuid.NewString()
	if err := s.recovery.Put(ctx, token, user.Email, recoveryTokenTTL); err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password recovery token issued")
	return token, nil
}

// ResetPassword consumes a recovery token and stores the new password.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.recovery.Take(ctx, token)
	if err != nil {
		return err
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	_, err = s.repo.Update(ctx, user)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
