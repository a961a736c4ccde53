package domain

import "errors"

// Domain errors shared between the repository and service layers.
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Plant errors
	ErrPlantNotFound = errors.New("plant not found")

	// Calendar event errors
	ErrEventNotFound = errors.New("calendar event not found")
)
