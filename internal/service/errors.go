// Package service provides business logic services for Planta.
package service

import "errors"

// Common service errors.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password: must be at least 8 characters")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")

	// Plant errors
	ErrPlantNotFound     = errors.New("plant not found")
	ErrPlantNameRequired = errors.New("plant name is required")

	// Calendar event errors
	ErrEventNotFound         = errors.New("calendar event not found")
	ErrEventTitleRequired    = errors.New("event title is required")
	ErrEventStartDateInvalid = errors.New("invalid event start date")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
