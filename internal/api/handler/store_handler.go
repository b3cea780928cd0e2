package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

// StoreHandler serves the storefront. Listing is public; product management
// is mounted under the admin group.
type StoreHandler struct {
	api ports.StoreAPI
}

func NewStoreHandler(api ports.StoreAPI) *StoreHandler {
	return &StoreHandler{api: api}
}

func (h *StoreHandler) Products(c echo.Context) error {
	products, err := h.api.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *StoreHandler) Product(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	product, err := h.api.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *StoreHandler) Categories(c echo.Context) error {
	categories, err := h.api.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *StoreHandler) CreateProduct(c echo.Context) error {
	var in domain.ProductInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	product, err := h.api.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *StoreHandler) UpdateProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in domain.ProductInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	product, err := h.api.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *StoreHandler) DeleteProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
