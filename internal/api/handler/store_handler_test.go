package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
)

type stubStoreAPI struct {
	created *domain.ProductInput
	fetched uuid.UUID
}

func (s *stubStoreAPI) ListCategories(context.Context) ([]domain.Category, error) { return nil, nil }

func (s *stubStoreAPI) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{{Name: "Croquetas"}}, nil
}

func (s *stubStoreAPI) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	s.fetched = id
	return &domain.Product{ID: id, Name: "Croquetas"}, nil
}

func (s *stubStoreAPI) CreateProduct(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	s.created = &in
	return &domain.Product{ID: uuid.New(), Name: in.Name}, nil
}

func (s *stubStoreAPI) UpdateProduct(_ context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: in.Name}, nil
}

func (s *stubStoreAPI) DeleteProduct(context.Context, uuid.UUID) error { return nil }

func TestStoreHandler_Product_InvalidID(t *testing.T) {
	e := echo.New()
	stub := &stubStoreAPI{}
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/store/products/nope", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := NewStoreHandler(stub).Product(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if stub.fetched != uuid.Nil {
		t.Fatalf("backend must not be called")
	}
}

func TestStoreHandler_CreateProduct(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubStoreAPI{}
	handler := NewStoreHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/admin/products", `{"name":"Croquetas","price":"gratis"}`), httptest.NewRecorder())
	if err := handler.CreateProduct(c); domain.AsError(err).Field("price") == "" {
		t.Fatalf("expected price error, got %v", err)
	}
	if stub.created != nil {
		t.Fatalf("backend must not be called")
	}

	rec := httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPost, "/admin/products", `{"name":"Croquetas","price":"12.50","stock":3}`), rec)
	if err := handler.CreateProduct(c); err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if rec.Code != http.StatusCreated || stub.created == nil || stub.created.Price != "12.50" {
		t.Fatalf("unexpected result: %d %+v", rec.Code, stub.created)
	}
}
