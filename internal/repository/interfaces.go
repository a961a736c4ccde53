// Package repository defines data access interfaces for Planta.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while
// keeping the service layer clean.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/planta-io/planta/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user and assigns its ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByAccessToken retrieves the user holding the given access token.
	// This is the primary method used for authentication.
	GetByAccessToken(ctx context.Context, token string) (*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// List returns all users with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error)

	// Delete deletes a user by ID.
	Delete(ctx context.Context, id int64) error
}

// =============================================================================
// Plant Repository
// =============================================================================

// PlantRepository defines the interface for plant data access.
type PlantRepository interface {
	// Create creates a new plant.
	Create(ctx context.Context, plant *domain.Plant) error

	// GetByID retrieves a plant by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error)

	// ListByOwner returns the owner's plants, newest first, capped at limit.
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.Plant, error)

	// Update updates an existing plant.
	Update(ctx context.Context, plant *domain.Plant) error

	// Delete deletes a plant by ID and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Plant, error)
}

// =============================================================================
// Calendar Event Repository
// =============================================================================

// EventRepository defines the interface for calendar event data access.
type EventRepository interface {
	// Create creates a new calendar event.
	Create(ctx context.Context, event *domain.CalendarEvent) error

	// GetByID retrieves an event by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)

	// ListByOwner returns the owner's events, newest first, capped at limit.
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.CalendarEvent, error)

	// SetCompleted updates the completion flag of an event and returns
	// the updated record.
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.CalendarEvent, error)

	// Delete deletes an event by ID and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error)
}

// =============================================================================
// Common Types
// =============================================================================

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int
}

// ListResult is a generic paginated list result.
type ListResult[T any] struct {
	// Items is the list of items.
	Items []*T

	// Total is the total number of items (without pagination).
	Total int64

	// Offset is the current offset.
	Offset int

	// Limit is the current limit.
	Limit int
}

// Repositories bundles all repository instances for wiring.
type Repositories struct {
	User  UserRepository
	Plant PlantRepository
	Event EventRepository
}

// DatabaseHealth is an interface for database lifecycle and health checks.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
