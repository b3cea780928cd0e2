package domain

import (
	"time"

	"github.com/google/uuid"
)

// PetType is a species entry such as "Perro" or "Gato".
type PetType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Pet is a pet record owned by the signed-in user.
type Pet struct {
	ID          uuid.UUID `json:"id"`
	User        int64     `json:"user"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	PetType     *PetType  `json:"pet_type,omitempty"`
	AnimalBreed string    `json:"animal_breed"`
	Description string    `json:"description"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetInput is the create/update payload for a pet. Update requests send only
// the non-empty fields.
type PetInput struct {
	Name        string     `json:"name,omitempty"         validate:"required"`
	Age         *int       `json:"age,omitempty"          validate:"required,gte=0"`
	PetTypeID   *uuid.UUID `json:"pet_type_id,omitempty"  validate:"required"`
	AnimalBreed string     `json:"animal_breed,omitempty" validate:"required"`
	Description string     `json:"description,omitempty"`
}
