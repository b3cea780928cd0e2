package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

var _ ports.StoreAPI = (*Client)(nil)

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "categories/", path: "categories/", session: true}, &cats)
	return cats, err
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "products/", path: "products/", session: true}, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, request{method: http.MethodGet, endpoint: "products/{id}/", path: productPath(id), session: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, request{method: http.MethodPost, endpoint: "products/", path: "products/", body: in, session: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, request{method: http.MethodPut, endpoint: "products/{id}/", path: productPath(id), body: in, session: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: "products/{id}/", path: productPath(id), session: true}, nil)
}

func productPath(id uuid.UUID) string {
	return fmt.Sprintf("products/%s/", id)
}
