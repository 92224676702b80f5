package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskvault/todo-api/internal/api/middleware"
	"github.com/taskvault/todo-api/internal/core/domain"
)

type stubSessions struct {
	registered map[string]string // email -> password
	logoutErr  error
	loggedOut  []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{registered: make(map[string]string)}
}

func (s *stubSessions) Register(_ context.Context, email, password string) (*domain.User, string, error) {
	if _, exists := s.registered[email]; exists {
		return nil, "", domain.ErrEmailTaken
	}
	s.registered[email] = password
	return &domain.User{ID: "user_1", Email: email}, "token_" + email, nil
}

func (s *stubSessions) Login(_ context.Context, email, password string) (*domain.User, string, error) {
	stored, ok := s.registered[email]
	if !ok || stored != password {
		return nil, "", domain.ErrInvalidCredentials
	}
	return &domain.User{ID: "user_1", Email: email}, "token_" + email, nil
}

func (s *stubSessions) Logout(_ context.Context, _, token string) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func newUserContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register(t *testing.T) {
	h := NewUserHandler(newStubSessions())
	c, rec := newUserContext(http.MethodPost, "/users", `{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(middleware.HeaderAuthToken); got != "token_alice@example.com" {
		t.Fatalf("x-auth header missing or wrong: %q", got)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["email"] != "alice@example.com" {
		t.Fatalf("unexpected email: %v", body["email"])
	}
	if body["_id"] == "" || body["_id"] == nil {
		t.Fatalf("missing _id")
	}
	if _, leaked := body["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestUserHandler_Register_Validation(t *testing.T) {
	h := NewUserHandler(newStubSessions())

	cases := []struct {
		name, body string
	}{
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"alice@example.com","password":"12345"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		c, rec := newUserContext(http.MethodPost, "/users", tc.body)
		if err := h.Register(c); err != nil {
			t.Fatalf("%s: Register returned error: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
		if rec.Header().Get(middleware.HeaderAuthToken) != "" {
			t.Fatalf("%s: x-auth header set on failure", tc.name)
		}
	}
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	sessions := newStubSessions()
	h := NewUserHandler(sessions)

	c, _ := newUserContext(http.MethodPost, "/users", `{"email":"bob@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("first register: %v", err)
	}

	c, rec := newUserContext(http.MethodPost, "/users", `{"email":"bob@example.com","password":"other12"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	sessions := newStubSessions()
	h := NewUserHandler(sessions)

	c, _ := newUserContext(http.MethodPost, "/users", `{"email":"alice@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := newUserContext(http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec.Header().Get(middleware.HeaderAuthToken) != "" {
		t.Fatalf("x-auth header present on failed login")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	sessions := newStubSessions()
	h := NewUserHandler(sessions)

	c, _ := newUserContext(http.MethodPost, "/users", `{"email":"alice@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := newUserContext(http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(middleware.HeaderAuthToken) == "" {
		t.Fatalf("x-auth header missing")
	}
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(newStubSessions())
	c, rec := newUserContext(http.MethodGet, "/users/me", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "user_1", Email: "alice@example.com"})

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["_id"] != "user_1" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, leaked := body["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := NewUserHandler(newStubSessions())
	c, _ := newUserContext(http.MethodGet, "/users/me", "")

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Logout(t *testing.T) {
	sessions := newStubSessions()
	h := NewUserHandler(sessions)

	c, rec := newUserContext(http.MethodDelete, "/users/me/token", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "user_1"})
	c.Set(middleware.ContextKeyToken, "token_abc")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sessions.loggedOut) != 1 || sessions.loggedOut[0] != "token_abc" {
		t.Fatalf("logout did not revoke the request token: %v", sessions.loggedOut)
	}
}

func TestUserHandler_Logout_Failure(t *testing.T) {
	sessions := newStubSessions()
	sessions.logoutErr = context.DeadlineExceeded
	h := NewUserHandler(sessions)

	c, rec := newUserContext(http.MethodDelete, "/users/me/token", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "user_1"})
	c.Set(middleware.ContextKeyToken, "token_abc")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
