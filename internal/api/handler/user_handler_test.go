package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	recoverFn  func(ctx context.Context, email string) (string, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) RecoverPassword(ctx context.Context, email string) (string, error) {
	return s.recoverFn(ctx, email)
}

func (s *stubUserService) GetByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserService) ListByRole(context.Context, string) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) SearchByName(context.Context, string) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Update(context.Context, string, ports.UpdateUserInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) ChangePassword(context.Context, string, string, string) error {
	return domain.ErrUserNotFound
}

func (s *stubUserService) SetActive(context.Context, string, bool) error {
	return domain.ErrUserNotFound
}

func (s *stubUserService) SoftDelete(context.Context, string) error { return domain.ErrUserNotFound }

func (s *stubUserService) Purge(context.Context, string) error { return domain.ErrUserNotFound }

func (s *stubUserService) ResetPassword(context.Context, string, string) error {
	return domain.ErrRecoveryTokenInvalid
}

// newTestEcho wires the validator and error handler the routers install, so
// handler tests observe the same envelopes as a running service.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TraceID == "" {
		t.Fatalf("expected traceId in envelope")
	}
	return resp
}

func TestUserHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Email != "ana@example.com" || input.Role != domain.RolePatient {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "user-1", Name: input.Name, Email: input.Email, Role: input.Role, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Register, http.MethodPost, "/api/usuarios/registro",
		`{"name":"Ana","surname":"García","email":"ana@example.com","password":"Str0ng!pass","role":"PATIENT"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp.Code != api.CodeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.Code)
	}
	user, ok := resp.Data.(map[string]any)
	if !ok || user["id"] != "user-1" {
		t.Fatalf("unexpected data payload: %+v", resp.Data)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}
}

func TestUserHandler_Register_WeakPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Register, http.MethodPost, "/api/usuarios/registro",
		`{"name":"Ana","surname":"García","email":"ana@example.com","password":"weak","role":"PATIENT"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Code != api.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %s", resp.Code)
	}
	fields, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected field map as data, got %+v", resp.Data)
	}
	if _, found := fields["password"]; !found {
		t.Fatalf("expected password field error, got %+v", fields)
	}
}

func TestUserHandler_Register_UnknownRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Register, http.MethodPost, "/api/usuarios/registro",
		`{"name":"Ana","surname":"García","email":"ana@example.com","password":"Str0ng!pass","role":"SUPERUSER"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Register, http.MethodPost, "/api/usuarios/registro",
		`{"name":"Ana","surname":"García","email":"dup@example.com","password":"Str0ng!pass","role":"PATIENT"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Code != api.CodeError {
		t.Fatalf("expected ERROR, got %s", resp.Code)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				User:  &domain.User{ID: "user-1", Name: "Ana", Email: email, Role: domain.RolePatient, Active: true},
				Token: "signed-token",
			}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/api/usuarios/login",
		`{"email":"ana@example.com","password":"Str0ng!pass"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok || data["token"] != "signed-token" {
		t.Fatalf("expected token in payload, got %+v", resp.Data)
	}
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/api/usuarios/login",
		`{"email":"ana@example.com","password":"nope1234"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_Login_InactiveAccount(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInactiveAccount
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.Login, http.MethodPost, "/api/usuarios/login",
		`{"email":"ana@example.com","password":"Str0ng!pass"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserHandler_RecoverPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		recoverFn: func(_ context.Context, email string) (string, error) {
			if email != "ana@example.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return "one-time-token", nil
		},
	}
	h := NewUserHandler(stub)

	rec := doJSON(e, h.RecoverPassword, http.MethodPost, "/api/usuarios/recuperar-password",
		`{"email":"ana@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	if !ok || data["recovery_token"] != "one-time-token" {
		t.Fatalf("expected recovery token in payload, got %+v", resp.Data)
	}
}
