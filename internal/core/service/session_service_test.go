package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/todo-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Tokens = append([]domain.AuthToken(nil), u.Tokens...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByToken(_ context.Context, id, token, access string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || !u.HasToken(token, access) {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AppendToken(_ context.Context, id string, token domain.AuthToken) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (r *stubUserRepo) RemoveToken(_ context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func newSessionService(repo *stubUserRepo) *SessionService {
	return NewSessionService(repo, NewJWTCodec("secret"), nil, zerolog.Nop())
}

func TestSessionService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newSessionService(repo)

	user, token, err := svc.Register(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	// The issued token must be resolvable right away.
	stored, err := repo.FindByToken(context.Background(), user.ID, token, domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("issued token not resolvable: %v", err)
	}
	if stored.ID != user.ID {
		t.Fatalf("token resolved to wrong user: %s", stored.ID)
	}
}

func TestSessionService_Register_Validation(t *testing.T) {
	svc := newSessionService(newStubUserRepo())

	cases := []struct {
		name, email, password string
	}{
		{"bad email", "not-an-email", "secret1"},
		{"empty email", "", "secret1"},
		{"short password", "bob@example.com", "12345"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.email, tc.password); err != domain.ErrValidation {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestSessionService_Register_DuplicateEmail(t *testing.T) {
	svc := newSessionService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), "bob@example.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "bob@example.com", "other123"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSessionService_Login_AppendsToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newSessionService(repo)

	user, t1, err := svc.Register(context.Background(), "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, t2, err := svc.Login(context.Background(), "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if t2 == "" {
		t.Fatalf("expected token, got empty")
	}

	// Both sessions stay valid; the register token was not rotated out.
	if _, err := repo.FindByToken(context.Background(), user.ID, t1, domain.TokenPurposeAuth); err != nil {
		t.Fatalf("register token no longer valid: %v", err)
	}
	if _, err := repo.FindByToken(context.Background(), user.ID, t2, domain.TokenPurposeAuth); err != nil {
		t.Fatalf("login token not valid: %v", err)
	}
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	svc := newSessionService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email must be the same error.
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "goodpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Logout_RemovesOnlyThatToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newSessionService(repo)

	user, t1, err := svc.Register(context.Background(), "erin@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, t2, err := svc.Login(context.Background(), "erin@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID, t1); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := repo.FindByToken(context.Background(), user.ID, t1, domain.TokenPurposeAuth); err != domain.ErrUserNotFound {
		t.Fatalf("revoked token still resolves: %v", err)
	}
	if _, err := repo.FindByToken(context.Background(), user.ID, t2, domain.TokenPurposeAuth); err != nil {
		t.Fatalf("other session was revoked too: %v", err)
	}
}

// failingCache always errors on Invalidate, like a Redis that went away
// between login and logout.
type failingCache struct{}

func (failingCache) Get(_ context.Context, _ string) (string, bool, error) { return "", false, nil }
func (failingCache) Set(_ context.Context, _, _ string) error              { return nil }
func (failingCache) Invalidate(_ context.Context, _ string) error {
	return errors.New("connection refused")
}

func TestSessionService_Logout_CacheInvalidateFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewSessionService(repo, NewJWTCodec("secret"), failingCache{}, zerolog.Nop())

	user, token, err := svc.Register(context.Background(), "gail@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// The failed invalidation must surface; a caller told "logged out" while
	// a cache entry still binds the token could not trust the revocation.
	if err := svc.Logout(context.Background(), user.ID, token); err == nil {
		t.Fatalf("expected error when cache invalidation fails")
	}

	// The store-side revocation still happened.
	if _, err := repo.FindByToken(context.Background(), user.ID, token, domain.TokenPurposeAuth); err != domain.ErrUserNotFound {
		t.Fatalf("token still in store after logout: %v", err)
	}
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	svc := newSessionService(newStubUserRepo())

	user, token, err := svc.Register(context.Background(), "fred@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID, token); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), user.ID, token); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
}
