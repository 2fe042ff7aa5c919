package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. password too short, end date before start date).
// Handlers should map this to HTTP 422 (or 400 where the API contract says so).
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with a uniqueness constraint,
// e.g. registering an email that is already taken.
// Handlers should map this to HTTP 400.
var ErrConflict = errors.New("conflict")

// ErrUnauthenticated is returned for bad login credentials and for missing,
// malformed, or expired bearer tokens.
// Handlers should map this to HTTP 401. The message must never reveal
// whether the email or the password was wrong.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when an authenticated user is not authorized for
// the target trip. Handlers should map this to HTTP 403.
// Existence is always checked first, so probing a nonexistent trip id yields
// ErrNotFound, not ErrForbidden.
var ErrForbidden = errors.New("forbidden")
