package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

type PetsHandler struct {
	api ports.PetsAPI
}

func NewPetsHandler(api ports.PetsAPI) *PetsHandler {
	return &PetsHandler{api: api}
}

func (h *PetsHandler) List(c echo.Context) error {
	pets, err := h.api.ListPets(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetsHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	pet, err := h.api.GetPet(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetsHandler) Create(c echo.Context) error {
	var in domain.PetInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	pet, err := h.api.CreatePet(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pet)
}

// Update sends a partial update; fields left empty keep their value.
func (h *PetsHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in domain.PetInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	pet, err := h.api.UpdatePet(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

func (h *PetsHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.api.DeletePet(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PetsHandler) Types(c echo.Context) error {
	types, err := h.api.ListPetTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}
