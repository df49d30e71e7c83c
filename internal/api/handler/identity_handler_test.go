package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (*ports.AuthResult, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	confirmFn  func(ctx context.Context, in ports.ConfirmEmailInput) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) ConfirmEmail(ctx context.Context, in ports.ConfirmEmailInput) error {
	if s.confirmFn == nil {
		return nil
	}
	return s.confirmFn(ctx, in)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestIdentityHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.AuthResult, error) {
			if username != "alice" || password != "Secret1!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.AuthResult{Username: "alice", Email: "a@x.com", Token: "token123"}, nil
		},
	}
	h := NewIdentityHandler(stub, zerolog.Nop())

	c, rec := postJSON(e, "/identity/login", `{"username":"alice","password":"Secret1!"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Result.Succeeded || resp.Result.IsLockedOut || resp.Result.IsNotAllowed || resp.Result.RequiresTwoFactor {
		t.Errorf("unexpected result flags: %+v", resp.Result)
	}
	if resp.Username != "alice" || resp.Email != "a@x.com" || resp.Token != "token123" {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestIdentityHandler_Login_FailuresShareOneResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
	}{
		{"wrong password", `{"username":"alice","password":"wrong"}`, domain.ErrInvalidCredentials},
		{"unknown user", `{"username":"bob","password":"anything"}`, domain.ErrInvalidCredentials},
		{"store failure", `{"username":"alice","password":"x"}`, errors.New("mongo timeout")},
		{"missing password", `{"username":"alice"}`, nil},
		{"malformed json", `not-json`, nil},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
					if tc.err == nil {
						t.Fatal("service must not be called for invalid input")
					}
					return nil, tc.err
				},
			}
			h := NewIdentityHandler(stub, zerolog.Nop())

			c, rec := postJSON(e, "/identity/login", tc.body)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("failure bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestIdentityHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			want := ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "Secret1!", Role: "Admin", JobTitle: "Engineer"}
			if in != want {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegisterResult{Succeeded: true, UserID: "u-1"}, nil
		},
	}
	h := NewIdentityHandler(stub, zerolog.Nop())

	c, rec := postJSON(e, "/identity/register",
		`{"username":"alice","email":"a@x.com","password":"Secret1!","role":"Admin","jobTitle":"Engineer"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"succeeded":true,"errors":[]}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestIdentityHandler_Register_PassesReasonsThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			return nil, &domain.RegistrationError{Reasons: []domain.Reason{
				{Code: domain.CodeDuplicateUserName, Description: "Username 'alice' is already taken."},
				{Code: domain.CodePasswordRequiresDigit, Description: "Passwords must have at least one digit ('0'-'9')."},
			}}
		},
	}
	h := NewIdentityHandler(stub, zerolog.Nop())

	c, rec := postJSON(e, "/identity/register", `{"username":"alice","password":"x","role":"Admin"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Succeeded || len(resp.Errors) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Errors[0].Code != domain.CodeDuplicateUserName || resp.Errors[1].Code != domain.CodePasswordRequiresDigit {
		t.Errorf("reasons not passed through in order: %+v", resp.Errors)
	}
}

func TestIdentityHandler_Register_UnknownErrorIsGeneric(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			return nil, errors.New("connection reset by peer")
		},
	}
	h := NewIdentityHandler(stub, zerolog.Nop())

	c, rec := postJSON(e, "/identity/register", `{"username":"alice","password":"x","role":"Admin"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Error("internal error details must not leak")
	}
	var resp registerResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Errors) != 1 || resp.Errors[0].Code != domain.CodeDefaultError {
		t.Errorf("expected DefaultError, got %+v", resp.Errors)
	}
}

func TestIdentityHandler_Register_MissingRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	h := NewIdentityHandler(stub, zerolog.Nop())

	c, rec := postJSON(e, "/identity/register", `{"username":"alice","password":"Secret1!"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "role is required") {
		t.Errorf("expected validation message, got %s", rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// ConfirmEmail
// ---------------------------------------------------------------------------

func TestIdentityHandler_ConfirmEmail_AlwaysOK(t *testing.T) {
	for _, body := range []string{`{"userId":"u-1","token":"abc"}`, `garbage`, ``} {
		e := newTestEcho()
		var got ports.ConfirmEmailInput
		stub := &stubAuthService{
			confirmFn: func(_ context.Context, in ports.ConfirmEmailInput) error {
				got = in
				return errors.New("ignored")
			},
		}
		h := NewIdentityHandler(stub, zerolog.Nop())

		c, rec := postJSON(e, "/identity/confirmemail", body)
		if err := h.ConfirmEmail(c); err != nil {
			t.Fatalf("body %q: handler error: %v", body, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("body %q: expected 200, got %d", body, rec.Code)
		}
		if body == `{"userId":"u-1","token":"abc"}` && (got.UserID != "u-1" || got.Token != "abc") {
			t.Errorf("unexpected input: %+v", got)
		}
	}
}
