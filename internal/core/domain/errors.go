package domain

import "errors"

var (
	// ErrValidation covers malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is the single login failure: the caller cannot
	// tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSignature is the single token-codec failure: tampered,
	// malformed and wrong-secret tokens are indistinguishable.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrUnauthenticated is the single authenticator failure: unknown user,
	// revoked token and bad signature all collapse into it.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrTodoNotFound covers both a missing id and an id owned by another
	// user; cross-tenant existence must not be observable.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrUserNotFound is internal to the repositories; the services map it
	// to ErrInvalidCredentials or ErrUnauthenticated before it escapes.
	ErrUserNotFound = errors.New("user not found")
)
