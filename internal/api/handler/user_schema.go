package handler

import "github.com/taskvault/todo-api/internal/core/domain"

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// that carry a body.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the public view of an account. The password hash and the
// token list never appear here; the session token travels only in the x-auth
// response header.
type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}
