package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// plantRepository implements repository.PlantRepository for SQLite.
type plantRepository struct {
	db *DB
}

// NewPlantRepository creates a new SQLite plant repository.
func NewPlantRepository(db *DB) repository.PlantRepository {
	return &plantRepository{db: db}
}

const plantColumns = `id, plant_name, type_of_plant, indoor_or_outdoor, image, information, created_by, created_at`

// Create creates a new plant.
func (r *plantRepository) Create(ctx context.Context, plant *domain.Plant) error {
	query := `
		INSERT INTO plants (id, plant_name, type_of_plant, indoor_or_outdoor, image, information, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		plant.ID.String(),
		plant.PlantName,
		plant.TypeOfPlant,
		plant.IndoorOrOutdoor,
		plant.Image,
		plant.Information,
		plant.CreatedBy,
		plant.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}

	return nil
}

// GetByID retrieves a plant by ID.
func (r *plantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = ?`
	return r.scanPlant(r.db.QueryRowContext(ctx, query, id.String()))
}

// ListByOwner returns the owner's plants, newest first, capped at limit.
func (r *plantRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants
		WHERE created_by = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	plants := make([]*domain.Plant, 0)
	for rows.Next() {
		plant, err := r.scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plants: %w", err)
	}

	return plants, nil
}

// Update updates an existing plant. The owner column is never touched.
func (r *plantRepository) Update(ctx context.Context, plant *domain.Plant) error {
	query := `
		UPDATE plants
		SET plant_name = ?, type_of_plant = ?, indoor_or_outdoor = ?, image = ?, information = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		plant.PlantName,
		plant.TypeOfPlant,
		plant.IndoorOrOutdoor,
		plant.Image,
		plant.Information,
		plant.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPlantNotFound
	}

	return nil
}

// Delete deletes a plant by ID and returns the deleted record.
func (r *plantRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Plant, error) {
	plant, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = ?`, id.String()); err != nil {
		return nil, fmt.Errorf("failed to delete plant: %w", err)
	}

	return plant, nil
}

// scanPlant scans a single plant row.
func (r *plantRepository) scanPlant(row rowScanner) (*domain.Plant, error) {
	plant := &domain.Plant{}
	var id, createdAt string

	err := row.Scan(
		&id,
		&plant.PlantName,
		&plant.TypeOfPlant,
		&plant.IndoorOrOutdoor,
		&plant.Image,
		&plant.Information,
		&plant.CreatedBy,
		&createdAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to scan plant: %w", err)
	}

	plant.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid plant id %q: %w", id, err)
	}
	plant.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return plant, nil
}

// Ensure plantRepository implements repository.PlantRepository.
var _ repository.PlantRepository = (*plantRepository)(nil)
