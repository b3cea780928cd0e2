package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// PetsAPI covers the pet records of the signed-in user.
type PetsAPI interface {
	ListPets(ctx context.Context) ([]domain.Pet, error)
	GetPet(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	CreatePet(ctx context.Context, in domain.PetInput) (*domain.Pet, error)
	UpdatePet(ctx context.Context, id uuid.UUID, in domain.PetInput) (*domain.Pet, error)
	DeletePet(ctx context.Context, id uuid.UUID) error
	ListPetTypes(ctx context.Context) ([]domain.PetType, error)
}

// StoreAPI covers the storefront catalogue.
type StoreAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ReservationsAPI covers service reservations. The backend scopes
// ListReservations to the caller unless the caller is an administrator.
type ReservationsAPI interface {
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, in domain.ReservationInput) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, in domain.ReservationInput) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	ListReservationStatuses(ctx context.Context) ([]domain.ReservationStatus, error)
	ReservationAnalytics(ctx context.Context) ([]domain.ReservationCount, error)
}

// UsersAPI covers the administrator user management endpoints.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	AssignRole(ctx context.Context, userID int64, role string) error
}
