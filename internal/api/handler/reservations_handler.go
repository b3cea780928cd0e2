package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

type ReservationsHandler struct {
	api ports.ReservationsAPI
}

func NewReservationsHandler(api ports.ReservationsAPI) *ReservationsHandler {
	return &ReservationsHandler{api: api}
}

// List returns the reservations visible to the signed-in user. The backend
// scopes the list, so the same handler serves /my-reservations and the
// administrator view.
func (h *ReservationsHandler) List(c echo.Context) error {
	reservations, err := h.api.ListReservations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Get returns one reservation; the reservation form loads it before editing.
func (h *ReservationsHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	reservation, err := h.api.GetReservation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationsHandler) Create(c echo.Context) error {
	var in domain.ReservationInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	if in.EndDate < in.StartDate {
		return domain.NewValidationError(map[string][]string{"end_date": {"end_date must not be before start_date"}})
	}
	reservation, err := h.api.CreateReservation(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationsHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in domain.ReservationInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	reservation, err := h.api.UpdateReservation(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationsHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteReservation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationsHandler) Statuses(c echo.Context) error {
	statuses, err := h.api.ListReservationStatuses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

func (h *ReservationsHandler) Analytics(c echo.Context) error {
	counts, err := h.api.ReservationAnalytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}
