package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// maxListSize caps owner-scoped listings.
const maxListSize = 20

// PlantService handles plant CRUD with per-owner scoping.
type PlantService struct {
	plantRepo       repository.PlantRepository
	strictOwnership bool
	logger          zerolog.Logger
}

// NewPlantService creates a new PlantService. With strictOwnership set,
// id-addressed reads, updates and deletes are limited to the owner;
// otherwise any authenticated caller holding the id may perform them.
func NewPlantService(plantRepo repository.PlantRepository, strictOwnership bool, logger zerolog.Logger) *PlantService {
	return &PlantService{
		plantRepo:       plantRepo,
		strictOwnership: strictOwnership,
		logger:          logger.With().Str("service", "plant").Logger(),
	}
}

// CreatePlantInput contains the data needed to add a plant.
type CreatePlantInput struct {
	OwnerID         int64
	PlantName       string
	TypeOfPlant     string
	IndoorOrOutdoor string
	Image           string
	Information     string
}

// Create adds a plant owned by the given account.
func (s *PlantService) Create(ctx context.Context, input CreatePlantInput) (*domain.Plant, error) {
	if input.PlantName == "" {
		return nil, ErrPlantNameRequired
	}

	plant := domain.NewPlant(input.OwnerID, input.PlantName)
	plant.TypeOfPlant = input.TypeOfPlant
	plant.IndoorOrOutdoor = input.IndoorOrOutdoor
	plant.Image = input.Image
	plant.Information = input.Information

	if err := s.plantRepo.Create(ctx, plant); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create plant")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("plant_id", plant.ID.String()).
		Int64("owner_id", plant.CreatedBy).
		Str("plant_name", plant.PlantName).
		Msg("plant created")

	return plant, nil
}

// Get retrieves a plant by ID on behalf of a caller.
func (s *PlantService) Get(ctx context.Context, callerID int64, id uuid.UUID) (*domain.Plant, error) {
	plant, err := s.plantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapPlantErr(err, id)
	}

	if s.strictOwnership && plant.CreatedBy != callerID {
		// Indistinguishable from a missing record.
		return nil, ErrPlantNotFound
	}

	return plant, nil
}

// ListByOwner returns the caller's plants, newest first, capped at 20.
func (s *PlantService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Plant, error) {
	plants, err := s.plantRepo.ListByOwner(ctx, ownerID, maxListSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to list plants")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return plants, nil
}

// UpdatePlantInput contains the data for a partial plant update. Nil
// fields are left untouched; ownership and image are never updatable
// through this path.
type UpdatePlantInput struct {
	CallerID int64
	ID       uuid.UUID
	Update   domain.PlantUpdate
}

// Update applies a partial update and returns the updated plant.
func (s *PlantService) Update(ctx context.Context, input UpdatePlantInput) (*domain.Plant, error) {
	plant, err := s.plantRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, s.wrapPlantErr(err, input.ID)
	}

	if s.strictOwnership && plant.CreatedBy != input.CallerID {
		return nil, ErrPlantNotFound
	}

	input.Update.Apply(plant)

	if err := s.plantRepo.Update(ctx, plant); err != nil {
		return nil, s.wrapPlantErr(err, input.ID)
	}

	s.logger.Info().
		Str("plant_id", plant.ID.String()).
		Int64("caller_id", input.CallerID).
		Msg("plant updated")

	return plant, nil
}

// Delete removes a plant and returns the deleted record.
func (s *PlantService) Delete(ctx context.Context, callerID int64, id uuid.UUID) (*domain.Plant, error) {
	if s.strictOwnership {
		plant, err := s.plantRepo.GetByID(ctx, id)
		if err != nil {
			return nil, s.wrapPlantErr(err, id)
		}
		if plant.CreatedBy != callerID {
			return nil, ErrPlantNotFound
		}
	}

	plant, err := s.plantRepo.Delete(ctx, id)
	if err != nil {
		return nil, s.wrapPlantErr(err, id)
	}

	s.logger.Info().
		Str("plant_id", id.String()).
		Int64("caller_id", callerID).
		Msg("plant deleted")

	return plant, nil
}

func (s *PlantService) wrapPlantErr(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrPlantNotFound) {
		return ErrPlantNotFound
	}
	s.logger.Error().Err(err).Str("plant_id", id.String()).Msg("plant store error")
	return fmt.Errorf("%w: %v", ErrInternalError, err)
}
