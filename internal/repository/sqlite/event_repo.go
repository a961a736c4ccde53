package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// eventRepository implements repository.EventRepository for SQLite.
type eventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite calendar event repository.
func NewEventRepository(db *DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, event_title, start_date, is_completed, created_by, created_at`

// Create creates a new calendar event.
func (r *eventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, event_title, start_date, is_completed, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID.String(),
		event.EventTitle,
		event.StartDate.Format(time.RFC3339Nano),
		boolToInt(event.IsCompleted),
		event.CreatedBy,
		event.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID.
func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ?`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id.String()))
}

// ListByOwner returns the owner's events, newest first, capped at limit.
func (r *eventRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE created_by = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
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
	result, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events SET is_completed = ? WHERE id = ?`,
		boolToInt(completed), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
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

	if _, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id.String()); err != nil {
		return nil, fmt.Errorf("failed to delete calendar event: %w", err)
	}

	return event, nil
}

// scanEvent scans a single calendar event row.
func (r *eventRepository) scanEvent(row rowScanner) (*domain.CalendarEvent, error) {
	event := &domain.CalendarEvent{}
	var id, startDate, createdAt string
	var isCompleted int

	err := row.Scan(
		&id,
		&event.EventTitle,
		&startDate,
		&isCompleted,
		&event.CreatedBy,
		&createdAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan calendar event: %w", err)
	}

	event.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", id, err)
	}
	event.IsCompleted = isCompleted != 0
	event.StartDate, _ = time.Parse(time.RFC3339Nano, startDate)
	event.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return event, nil
}

// boolToInt converts a boolean to an integer (SQLite has no native boolean).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure eventRepository implements repository.EventRepository.
var _ repository.EventRepository = (*eventRepository)(nil)
