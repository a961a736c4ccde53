package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// eventRepository implements repository.EventRepository for PostgreSQL.
type eventRepository struct {
	db *DB
}

// NewEventRepository creates a new PostgreSQL calendar event repository.
func NewEventRepository(db *DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, event_title, start_date, is_completed, created_by, created_at`

// Create creates a new calendar event.
func (r *eventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, event_title, start_date, is_completed, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		event.ID,
		event.EventTitle,
		event.StartDate,
		event.IsCompleted,
		event.CreatedBy,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID.
func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`

	event := &domain.CalendarEvent{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.EventTitle,
		&event.StartDate,
		&event.IsCompleted,
		&event.CreatedBy,
		&event.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get calendar event: %w", err)
	}

	return event, nil
}

// ListByOwner returns the owner's events, newest first, capped at limit.
func (r *eventRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		event := &domain.CalendarEvent{}
		err := rows.Scan(
			&event.ID,
			&event.EventTitle,
			&event.StartDate,
			&event.IsCompleted,
			&event.CreatedBy,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}

	return events, nil
}

// SetCompleted updates the completion flag and returns the updated record.
func (r *eventRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.CalendarEvent, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE calendar_events SET is_completed = $1 WHERE id = $2`,
		completed, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, domain.ErrEventNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete deletes an event by ID and returns the deleted record.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete calendar event: %w", err)
	}

	return event, nil
}

// Ensure eventRepository implements repository.EventRepository.
var _ repository.EventRepository = (*eventRepository)(nil)
