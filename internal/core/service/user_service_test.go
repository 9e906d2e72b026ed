package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/labworks/clinical-labs-api/internal/auth"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

func newUserService(repo *stubUserRepo, store *stubRecoveryStore) *UserService {
	codec := auth.NewCodec("test-secret", time.Hour)
	return NewUserService(repo, codec, store, zerolog.Nop())
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Ana",
		Surname:  "García",
		Email:    email,
		Password: "Str0ng!pass",
		Role:     domain.RolePatient,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, err := svc.Register(context.Background(), registerInput("Ana.Garcia@Example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "ana.garcia@example.com" {
		t.Fatalf("expected lower-cased email, got %q", user.Email)
	}
	if !user.Active {
		t.Fatalf("expected new account to be active")
	}
	if user.PasswordHash == "Str0ng!pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	if _, err := svc.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("ANA@EXAMPLE.COM")); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	registered, err := svc.Register(context.Background(), registerInput("carla@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "CARLA@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	codec := auth.NewCodec("test-secret", time.Hour)
	if !codec.IsValid(result.Token, "carla@example.com") {
		t.Fatalf("issued token failed validation")
	}
	role, err := codec.Role(result.Token)
	if err != nil || role != domain.RolePatient {
		t.Fatalf("expected role %s, got %q (err %v)", domain.RolePatient, role, err)
	}
	uid, err := codec.UserID(result.Token)
	if err != nil || uid != registered.ID {
		t.Fatalf("expected user id %s, got %q (err %v)", registered.ID, uid, err)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	_, _ = svc.Register(context.Background(), registerInput("dora@example.com"))
	if _, err := svc.Login(context.Background(), "dora@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, _ := svc.Register(context.Background(), registerInput("eva@example.com"))
	if err := svc.SoftDelete(context.Background(), user.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "eva@example.com", "Str0ng!pass"); err != domain.ErrInactiveAccount {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestUserService_SoftDelete_KeepsRecord(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, _ := svc.Register(context.Background(), registerInput("fede@example.com"))
	if err := svc.SoftDelete(context.Background(), user.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	stored, err := svc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected record to survive soft delete: %v", err)
	}
	if stored.Active {
		t.Fatalf("expected account to be inactive")
	}
}

func TestUserService_Purge_RemovesRecord(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, _ := svc.Register(context.Background(), registerInput("gus@example.com"))
	if err := svc.Purge(context.Background(), user.ID); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after purge, got %v", err)
	}
}

func TestUserService_Update_EmailCollision(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	_, _ = svc.Register(context.Background(), registerInput("one@example.com"))
	second, _ := svc.Register(context.Background(), registerInput("two@example.com"))

	_, err := svc.Update(context.Background(), second.ID, ports.UpdateUserInput{
		Name:    "Otro",
		Surname: "Nombre",
		Email:   "ONE@example.com",
		Role:    domain.RolePatient,
		Active:  true,
	})
	if err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserService_Update_SameEmailAllowed(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, _ := svc.Register(context.Background(), registerInput("keep@example.com"))
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{
		Name:    "Renamed",
		Surname: "García",
		Email:   "keep@example.com",
		Role:    domain.RoleDoctor,
		Active:  true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Renamed" || updated.Role != domain.RoleDoctor {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubRecoveryStore())

	user, _ := svc.Register(context.Background(), registerInput("hugo@example.com"))

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "N3w!passwd"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "Str0ng!pass", "N3w!passwd"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "hugo@example.com", "N3w!passwd"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "hugo@example.com", "Str0ng!pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
}

func TestUserService_RecoveryFlow(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubRecoveryStore()
	svc := newUserService(repo, store)

	_, _ = svc.Register(context.Background(), registerInput("ines@example.com"))

	token, err := svc.RecoverPassword(context.Background(), "INES@example.com")
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected recovery token")
	}

	if err := svc.ResetPassword(context.Background(), token, "Rec0ver3d!"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ines@example.com", "Rec0ver3d!"); err != nil {
		t.Fatalf("login with recovered password failed: %v", err)
	}

	// Token is one-time.
	if err := svc.ResetPassword(context.Background(), token, "Again!123"); err != domain.ErrRecoveryTokenInvalid {
		t.Fatalf("expected ErrRecoveryTokenInvalid on reuse, got %v", err)
	}
}

func TestUserService_RecoverPassword_UnknownEmail(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubRecoveryStore())

	if _, err := svc.RecoverPassword(context.Background(), "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
