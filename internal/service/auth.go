// Package service contains the business logic for the tripshare API.
// Services validate inputs, enforce access rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/repo"
)

// minPasswordLen is the registration password policy.
const minPasswordLen = 8

// dummyHash is a real bcrypt hash compared against when login hits an
// unknown email. Burning the same bcrypt cost on both failure paths keeps
// "unknown email" and "wrong password" indistinguishable by timing as well
// as by response.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration and credential verification.
type AuthService struct {
	users repo.UserRepo
}

// NewAuthService constructs an AuthService backed by the provided UserRepo.
func NewAuthService(users repo.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Register validates the credentials, hashes the password, and persists a
// new user. The returned User carries the stored hash; handlers expose only
// id and email. A duplicate email surfaces as domain.ErrConflict — the
// database unique constraint decides, so concurrent registrations race safely.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: invalid email address", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matching user.
// Unknown email and wrong password both return domain.ErrUnauthenticated
// with the same message; which of the two failed is never revealed.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Compare against a dummy hash so this path costs the same as a
		// real mismatch before returning the shared failure.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: incorrect email or password", domain.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: incorrect email or password", domain.ErrUnauthenticated)
	}
	return user, nil
}

// normalizeEmail lowercases and trims so lookups and the unique index agree
// on a single canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
