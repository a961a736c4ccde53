// Package domain contains the core business entities for Planta.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the plant tracking system.
package domain

import (
	"time"
)

// User represents a registered user in the system.
// Users own plants and calendar events and authenticate with an opaque
// access token issued once at registration.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"userId"`

	// Username is the unique username for login and display.
	Username string `json:"username"`

	// Email is the email address for the user. Required, free-form.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never be exposed in API responses.
	PasswordHash string `json:"-"`

	// AccessToken is the long-lived bearer credential, generated once at
	// registration. It is never rotated or expired. At most one user holds
	// a given token at any time (enforced by a unique index).
	AccessToken string `json:"accessToken"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a new User with the given credentials.
func NewUser(username, email, passwordHash, accessToken string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AccessToken:  accessToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
