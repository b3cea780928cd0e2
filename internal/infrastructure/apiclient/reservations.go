package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

var _ ports.ReservationsAPI = (*Client)(nil)

func (c *Client) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "reservations/", path: "reservations/", session: true}, &out)
	return out, err
}

func (c *Client) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var r domain.Reservation
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "reservations/{id}/", path: reservationPath(id), session: true}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateReservation(ctx context.Context, in domain.ReservationInput) (*domain.Reservation, error) {
	var r domain.Reservation
	err := c.do(ctx, request{method: http.MethodPost, endpoint: "reservations/", path: "reservations/", body: in, session: true}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id uuid.UUID, in domain.ReservationInput) (*domain.Reservation, error) {
	var r domain.Reservation
	err := c.do(ctx, request{method: http.MethodPut, endpoint: "reservations/{id}/", path: reservationPath(id), body: in, session: true}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: "reservations/{id}/", path: reservationPath(id), session: true}, nil)
}

func (c *Client) ListReservationStatuses(ctx context.Context) ([]domain.ReservationStatus, error) {
	var out []domain.ReservationStatus
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "reservation-statuses/", path: "reservation-statuses/", session: true}, &out)
	return out, err
}

func (c *Client) ReservationAnalytics(ctx context.Context) ([]domain.ReservationCount, error) {
	var out []domain.ReservationCount
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "reservations/analytics/", path: "reservations/analytics/", session: true}, &out)
	return out, err
}

func reservationPath(id uuid.UUID) string {
	return fmt.Sprintf("reservations/%s/", id)
}
