package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// EventService handles calendar events with per-owner scoping.
type EventService struct {
	eventRepo       repository.EventRepository
	strictOwnership bool
	logger          zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, strictOwnership bool, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		strictOwnership: strictOwnership,
		logger:          logger.With().Str("service", "event").Logger(),
	}
}

// CreateEventInput contains the data needed to schedule an event.
type CreateEventInput struct {
	OwnerID    int64
	EventTitle string

	// StartDate accepts RFC 3339 or a bare YYYY-MM-DD date.
	StartDate string
}

// startDateLayouts are the accepted start date formats, tried in order.
var startDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseStartDate(s string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrEventStartDateInvalid
}

// Create schedules a calendar event owned by the given account. New
// events always start out not completed.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*domain.CalendarEvent, error) {
	if input.EventTitle == "" {
		return nil, ErrEventTitleRequired
	}

	startDate, err := parseStartDate(input.StartDate)
	if err != nil {
		return nil, err
	}

	event := domain.NewCalendarEvent(input.OwnerID, input.EventTitle, startDate)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create calendar event")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("event_id", event.ID.String()).
		Int64("owner_id", event.CreatedBy).
		Str("event_title", event.EventTitle).
		Msg("calendar event created")

	return event, nil
}

// ListByOwner returns the caller's events, newest first, capped at 20.
func (s *EventService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.CalendarEvent, error) {
	events, err := s.eventRepo.ListByOwner(ctx, ownerID, maxListSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to list calendar events")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return events, nil
}

// SetCompleted updates the completion flag and returns the updated event.
func (s *EventService) SetCompleted(ctx context.Context, callerID int64, id uuid.UUID, completed bool) (*domain.CalendarEvent, error) {
	if s.strictOwnership {
		if err := s.checkOwner(ctx, callerID, id); err != nil {
			return nil, err
		}
	}

	event, err := s.eventRepo.SetCompleted(ctx, id, completed)
	if err != nil {
		return nil, s.wrapEventErr(err, id)
	}

	s.logger.Info().
		Str("event_id", id.String()).
		Int64("caller_id", callerID).
		Bool("is_completed", completed).
		Msg("calendar event completion updated")

	return event, nil
}

// Delete removes an event and returns the deleted record.
func (s *EventService) Delete(ctx context.Context, callerID int64, id uuid.UUID) (*domain.CalendarEvent, error) {
	if s.strictOwnership {
		if err := s.checkOwner(ctx, callerID, id); err != nil {
			return nil, err
		}
	}

	event, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.wrapEventErr(err, id)
	}

	s.logger.Info().
		Str("event_id", id.String()).
		Int64("caller_id", callerID).
		Msg("calendar event deleted")

	return event, nil
}

// checkOwner rejects callers that do not own the event. A cross-owner
// access reads the same as a missing record.
func (s *EventService) checkOwner(ctx context.Context, callerID int64, id uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return s.wrapEventErr(err, id)
	}
	if event.CreatedBy != callerID {
		return ErrEventNotFound
	}
	return nil
}

func (s *EventService) wrapEventErr(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrEventNotFound) {
		return ErrEventNotFound
	}
	s.logger.Error().Err(err).Str("event_id", id.String()).Msg("calendar event store error")
	return fmt.Errorf("%w: %v", ErrInternalError, err)
}
