package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

const minPasswordLength = 6

// Intake check only; the store's unique index is the real uniqueness guard.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SessionService implements registration, login and logout.
type SessionService struct {
	users  ports.UserRepository
	codec  ports.TokenCodec
	cache  ports.TokenCache // optional, may be nil
	logger zerolog.Logger
}

func NewSessionService(users ports.UserRepository, codec ports.TokenCodec, cache ports.TokenCache, logger zerolog.Logger) *SessionService {
	return &SessionService{users: users, codec: codec, cache: cache, logger: logger}
}

func (s *SessionService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return nil, "", domain.ErrValidation
	}
	if len(password) < minPasswordLength {
		return nil, "", domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	// A fresh token per login: tokens already held by other devices stay
	// valid until their own logout.
	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// Logout revokes exactly the given token. A token that is already gone is
// treated as success: double-logout is not an error.
func (s *SessionService) Logout(ctx context.Context, userID, token string) error {
	if err := s.users.RemoveToken(ctx, userID, token); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, token); err != nil {
			// The store entry is already gone, but a stale cache entry must
			// not be reported as a clean logout.
			s.logger.Error().Err(err).Msg("token cache invalidation failed")
			return fmt.Errorf("invalidate token cache: %w", err)
		}
	}
	s.logger.Info().Str("user_id", userID).Msg("token revoked")
	return nil
}

func (s *SessionService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.codec.Issue(user.ID, domain.TokenPurposeAuth)
	if err != nil {
		return "", err
	}
	entry := domain.AuthToken{Access: domain.TokenPurposeAuth, Token: token}
	if err := s.users.AppendToken(ctx, user.ID, entry); err != nil {
		return "", err
	}
	user.Tokens = append(user.Tokens, entry)
	return token, nil
}
