package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlantLocation describes where a plant lives.
type PlantLocation string

const (
	// LocationIndoor marks a plant kept inside.
	LocationIndoor PlantLocation = "indoor"

	// LocationOutdoor marks a plant kept outside.
	LocationOutdoor PlantLocation = "outdoor"
)

// Plant represents a house plant owned by a single user.
type Plant struct {
	// ID is the unique identifier for the plant, assigned on creation.
	ID uuid.UUID `json:"id"`

	// PlantName is the display name. Required.
	PlantName string `json:"plantName"`

	// TypeOfPlant is a free-form plant type (e.g. "succulent").
	TypeOfPlant string `json:"typeOfPlant,omitempty"`

	// IndoorOrOutdoor records where the plant is kept.
	IndoorOrOutdoor string `json:"indoorOrOutdoor,omitempty"`

	// Image is a URL to a picture of the plant. Stored as an opaque string.
	Image string `json:"image,omitempty"`

	// Information holds free-form care notes.
	Information string `json:"information,omitempty"`

	// CreatedBy is the id of the owning user. Set once at creation and
	// never reassigned.
	CreatedBy int64 `json:"createdByUser"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// NewPlant creates a Plant owned by the given user.
func NewPlant(ownerID int64, name string) *Plant {
	return &Plant{
		ID:        uuid.New(),
		PlantName: name,
		CreatedBy: ownerID,
		CreatedAt: time.Now().UTC(),
	}
}

// PlantUpdate holds the whitelisted fields of a partial plant update.
// Nil fields are left unchanged. The owner and timestamps are not
// updatable through this path.
type PlantUpdate struct {
	PlantName       *string `json:"plantName"`
	TypeOfPlant     *string `json:"typeOfPlant"`
	IndoorOrOutdoor *string `json:"indoorOrOutdoor"`
	Information     *string `json:"information"`
}

// Apply copies the set fields onto the plant.
func (u PlantUpdate) Apply(p *Plant) {
	if u.PlantName != nil {
		p.PlantName = *u.PlantName
	}
	if u.TypeOfPlant != nil {
		p.TypeOfPlant = *u.TypeOfPlant
	}
	if u.IndoorOrOutdoor != nil {
		p.IndoorOrOutdoor = *u.IndoorOrOutdoor
	}
	if u.Information != nil {
		p.Information = *u.Information
	}
}
