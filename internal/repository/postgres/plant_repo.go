package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// plantRepository implements repository.PlantRepository for PostgreSQL.
type plantRepository struct {
	db *DB
}

// NewPlantRepository creates a new PostgreSQL plant repository.
func NewPlantRepository(db *DB) repository.PlantRepository {
	return &plantRepository{db: db}
}

const plantColumns = `id, plant_name, type_of_plant, indoor_or_outdoor, image, information, created_by, created_at`

// Create creates a new plant.
func (r *plantRepository) Create(ctx context.Context, plant *domain.Plant) error {
	query := `
		INSERT INTO plants (id, plant_name, type_of_plant, indoor_or_outdoor, image, information, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		plant.ID,
		plant.PlantName,
		plant.TypeOfPlant,
		plant.IndoorOrOutdoor,
		plant.Image,
		plant.Information,
		plant.CreatedBy,
		plant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}

	return nil
}

// GetByID retrieves a plant by ID.
func (r *plantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`

	plant := &domain.Plant{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&plant.ID,
		&plant.PlantName,
		&plant.TypeOfPlant,
		&plant.IndoorOrOutdoor,
		&plant.Image,
		&plant.Information,
		&plant.CreatedBy,
		&plant.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}

	return plant, nil
}

// ListByOwner returns the owner's plants, newest first, capped at limit.
func (r *plantRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	plants := make([]*domain.Plant, 0)
	for rows.Next() {
		plant := &domain.Plant{}
		err := rows.Scan(
			&plant.ID,
			&plant.PlantName,
			&plant.TypeOfPlant,
			&plant.IndoorOrOutdoor,
			&plant.Image,
			&plant.Information,
			&plant.CreatedBy,
			&plant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
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
		SET plant_name = $1, type_of_plant = $2, indoor_or_outdoor = $3, image = $4, information = $5
		WHERE id = $6
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		plant.PlantName,
		plant.TypeOfPlant,
		plant.IndoorOrOutdoor,
		plant.Image,
		plant.Information,
		plant.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}

	if tag.RowsAffected() == 0 {
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

	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete plant: %w", err)
	}

	return plant, nil
}

// Ensure plantRepository implements repository.PlantRepository.
var _ repository.PlantRepository = (*plantRepository)(nil)
