package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

var _ ports.PetsAPI = (*Client)(nil)

func (c *Client) ListPets(ctx context.Context) ([]domain.Pet, error) {
	var pets []domain.Pet
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "pets/", path: "pets/", session: true}, &pets)
	return pets, err
}

func (c *Client) GetPet(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	var pet domain.Pet
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "pets/{id}/", path: petPath(id), session: true}, &pet)
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *Client) CreatePet(ctx context.Context, in domain.PetInput) (*domain.Pet, error) {
	var pet domain.Pet
	err := c.do(ctx, request{method: http.MethodPost, endpoint: "pets/", path: "pets/", body: in, session: true}, &pet)
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// UpdatePet sends a partial update; empty fields of in are omitted.
func (c *Client) UpdatePet(ctx context.Context, id uuid.UUID, in domain.PetInput) (*domain.Pet, error) {
	var pet domain.Pet
	err := c.do(ctx, request{method: http.MethodPatch, endpoint: "pets/{id}/", path: petPath(id), body: in, session: true}, &pet)
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *Client) DeletePet(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: "pets/{id}/", path: petPath(id), session: true}, nil)
}

func (c *Client) ListPetTypes(ctx context.Context) ([]domain.PetType, error) {
	var types []domain.PetType
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "pet-types/", path: "pet-types/", session: true}, &types)
	return types, err
}

func petPath(id uuid.UUID) string {
	return fmt.Sprintf("pets/%s/", id)
}
