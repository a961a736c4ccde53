package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent represents a scheduled care event (watering, repotting)
// owned by a single user.
type CalendarEvent struct {
	// ID is the unique identifier for the event, assigned on creation.
	ID uuid.UUID `json:"id"`

	// EventTitle is the display title. Required.
	EventTitle string `json:"eventTitle"`

	// StartDate is when the event is scheduled.
	StartDate time.Time `json:"startDate"`

	// IsCompleted marks the event as done.
	IsCompleted bool `json:"isCompleted"`

	// CreatedBy is the id of the owning user. Set once at creation and
	// never reassigned.
	CreatedBy int64 `json:"createdByUser"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// NewCalendarEvent creates a CalendarEvent owned by the given user.
func NewCalendarEvent(ownerID int64, title string, startDate time.Time) *CalendarEvent {
	return &CalendarEvent{
		ID:         uuid.New(),
		EventTitle: title,
		StartDate:  startDate,
		CreatedBy:  ownerID,
		CreatedAt:  time.Now().UTC(),
	}
}
