package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is a reservation state such as "Pending".
type ReservationStatus struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Reservation is a service booking for one pet. Dates use the backend's
// YYYY-MM-DD form.
type Reservation struct {
	ID           uuid.UUID          `json:"id"`
	Pet          *Pet               `json:"pet,omitempty"`
	Status       *ReservationStatus `json:"status,omitempty"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Observations string             `json:"observations"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ReservationInput is the create/update payload for a reservation.
type ReservationInput struct {
	PetID        uuid.UUID  `json:"pet_id"              validate:"required"`
	StatusID     *uuid.UUID `json:"status_id,omitempty"`
	StartDate    string     `json:"start_date"          validate:"required,datetime=2006-01-02"`
	EndDate      string     `json:"end_date"            validate:"required,datetime=2006-01-02"`
	Observations string     `json:"observations,omitempty"`
}

// ReservationCount is one row of the reservation analytics report.
type ReservationCount struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	TotalReservations int       `json:"total_reservations"`
}
