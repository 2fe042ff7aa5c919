// Package domain contains the core data types for the tripshare application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the service layer — handlers expose only ID and Email.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
