package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := NewDB(ctx, DefaultConfig(":memory:"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestUser(t *testing.T, db *DB, username string) *domain.User {
	t.Helper()

	user := domain.NewUser(username, username+"@example.com", "digest", "token-"+username)
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "ada")
	if user.ID == 0 {
		t.Fatal("expected assigned user ID")
	}

	byName, err := repo.GetByUsername(ctx, "ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byName.ID != user.ID || byName.AccessToken != user.AccessToken {
		t.Errorf("username lookup mismatch: %+v", byName)
	}

	byToken, err := repo.GetByAccessToken(ctx, user.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byToken.ID != user.ID {
		t.Errorf("token lookup mismatch: %+v", byToken)
	}

	if _, err := repo.GetByAccessToken(ctx, "no-such-token"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newTestUser(t, db, "ada")

	dup := domain.NewUser("ada", "other@example.com", "digest", "other-token")
	err := repo.Create(ctx, dup)
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestPlantRepository_OwnerScopedList(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlantRepository(db)
	ctx := context.Background()

	ada := newTestUser(t, db, "ada")
	bob := newTestUser(t, db, "bob")

	for i, name := range []string{"monstera", "pothos", "cactus"} {
		plant := domain.NewPlant(ada.ID, name)
		// Spread creation timestamps so ordering is deterministic.
		plant.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, plant); err != nil {
			t.Fatalf("failed to create plant: %v", err)
		}
	}
	if err := repo.Create(ctx, domain.NewPlant(bob.ID, "fern")); err != nil {
		t.Fatalf("failed to create plant: %v", err)
	}

	plants, err := repo.ListByOwner(ctx, ada.ID, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plants) != 3 {
		t.Fatalf("expected 3 plants for ada, got %d", len(plants))
	}
	if plants[0].PlantName != "cactus" {
		t.Errorf("expected newest plant first, got %q", plants[0].PlantName)
	}
	for _, p := range plants {
		if p.CreatedBy != ada.ID {
			t.Errorf("plant %q has wrong owner %d", p.PlantName, p.CreatedBy)
		}
	}
}

func TestPlantRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlantRepository(db)
	ctx := context.Background()

	ada := newTestUser(t, db, "ada")
	plant := domain.NewPlant(ada.ID, "monstera")
	plant.Information = "water weekly"
	if err := repo.Create(ctx, plant); err != nil {
		t.Fatalf("failed to create plant: %v", err)
	}

	plant.Information = "water twice a week"
	if err := repo.Update(ctx, plant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, plant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Information != "water twice a week" {
		t.Errorf("update not persisted: %q", got.Information)
	}

	deleted, err := repo.Delete(ctx, plant.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.PlantName != "monstera" {
		t.Errorf("delete returned wrong record: %+v", deleted)
	}

	if _, err := repo.GetByID(ctx, plant.ID); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Errorf("expected ErrPlantNotFound after delete, got %v", err)
	}

	if _, err := repo.Delete(ctx, uuid.New()); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Errorf("expected ErrPlantNotFound for unknown id, got %v", err)
	}
}

func TestEventRepository_SetCompleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	ada := newTestUser(t, db, "ada")
	event := domain.NewCalendarEvent(ada.ID, "repot the monstera", time.Now().UTC().Add(24*time.Hour))
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	updated, err := repo.SetCompleted(ctx, event.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsCompleted {
		t.Error("expected event to be completed")
	}

	if _, err := repo.SetCompleted(ctx, uuid.New(), true); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}
