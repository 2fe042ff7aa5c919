package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nwarren/tripshare/internal/domain"
)

// RegisterRequest is the body of POST /auth/register.
// The Email type rejects malformed addresses during decoding.
type RegisterRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// UserResponse is the public representation of a user: id and email only.
// The password hash never appears in any response.
type UserResponse struct {
	ID    int64               `json:"id"`
	Email openapi_types.Email `json:"email"`
}

// TokenResponse is the body of a successful POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), string(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrConflict):
			writeError(w, r, http.StatusBadRequest, "email_taken", "email already registered")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Email: openapi_types.Email(user.Email)})
}

// handleLogin handles POST /auth/login.
// The body is an OAuth2-style password form (username holds the email), so
// standard token-endpoint clients work unchanged.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_error", "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			// One code, one message for every credential failure.
			unauthorized(w, r, "incorrect email or password")
			return
		}
		internalError(w, r, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
