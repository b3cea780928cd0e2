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
	"github.com/petcare/petcare-client/internal/pkg/validate"
)

type stubPetsAPI struct {
	created *domain.PetInput
	deleted uuid.UUID
}

func (s *stubPetsAPI) ListPets(context.Context) ([]domain.Pet, error) {
	return []domain.Pet{{Name: "Firulais"}}, nil
}

func (s *stubPetsAPI) GetPet(_ context.Context, id uuid.UUID) (*domain.Pet, error) {
	return nil, &domain.Error{Kind: domain.KindValidation, Err: domain.ErrNotFound}
}

func (s *stubPetsAPI) CreatePet(_ context.Context, in domain.PetInput) (*domain.Pet, error) {
	s.created = &in
	return &domain.Pet{ID: uuid.New(), Name: in.Name}, nil
}

func (s *stubPetsAPI) UpdatePet(_ context.Context, id uuid.UUID, in domain.PetInput) (*domain.Pet, error) {
	return &domain.Pet{ID: id, Name: in.Name}, nil
}

func (s *stubPetsAPI) DeletePet(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func (s *stubPetsAPI) ListPetTypes(context.Context) ([]domain.PetType, error) {
	return nil, nil
}

func newValidatingEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func TestPetsHandler_Create_Validates(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubPetsAPI{}
	handler := NewPetsHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/pets", `{"name":"Firulais"}`), httptest.NewRecorder())

	err := handler.Create(c)
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if domain.AsError(err).Field("pet_type_id") == "" {
		t.Fatalf("expected pet_type_id error, got %+v", domain.AsError(err).Fields)
	}
	if stub.created != nil {
		t.Fatalf("backend must not be called")
	}
}

func TestPetsHandler_Create_Success(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubPetsAPI{}
	handler := NewPetsHandler(stub)

	body := `{"name":"Firulais","age":3,"pet_type_id":"` + uuid.NewString() + `","animal_breed":"Mestizo"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/pets", body), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.created == nil || *stub.created.Age != 3 {
		t.Fatalf("unexpected input: %+v", stub.created)
	}
}

func TestPetsHandler_InvalidID(t *testing.T) {
	e := newValidatingEcho()
	handler := NewPetsHandler(&stubPetsAPI{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/pets/nope", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	var he *echo.HTTPError
	if err := handler.Get(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPetsHandler_Delete(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubPetsAPI{}
	handler := NewPetsHandler(stub)
	id := uuid.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/pets/"+id.String(), nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.deleted != id {
		t.Fatalf("expected 204 and delete of %s, got %d %s", id, rec.Code, stub.deleted)
	}
}
