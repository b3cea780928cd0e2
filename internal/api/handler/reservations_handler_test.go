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

type stubReservationsAPI struct {
	created int
	fetched uuid.UUID
}

func (s *stubReservationsAPI) ListReservations(context.Context) ([]domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservationsAPI) GetReservation(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.fetched = id
	if id == missingReservation {
		return nil, &domain.Error{Kind: domain.KindValidation, Status: http.StatusNotFound, Err: domain.ErrNotFound}
	}
	return &domain.Reservation{ID: id, StartDate: "2026-10-20", EndDate: "2026-10-22"}, nil
}

var missingReservation = uuid.MustParse("00000000-0000-0000-0000-000000000404")

func (s *stubReservationsAPI) CreateReservation(_ context.Context, in domain.ReservationInput) (*domain.Reservation, error) {
	s.created++
	return &domain.Reservation{ID: uuid.New(), StartDate: in.StartDate, EndDate: in.EndDate}, nil
}

func (s *stubReservationsAPI) UpdateReservation(context.Context, uuid.UUID, domain.ReservationInput) (*domain.Reservation, error) {
	return nil, nil
}

func (s *stubReservationsAPI) DeleteReservation(context.Context, uuid.UUID) error { return nil }

func (s *stubReservationsAPI) ListReservationStatuses(context.Context) ([]domain.ReservationStatus, error) {
	return nil, nil
}

func (s *stubReservationsAPI) ReservationAnalytics(context.Context) ([]domain.ReservationCount, error) {
	return []domain.ReservationCount{{Name: "Pending", TotalReservations: 2}}, nil
}

func TestReservationsHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantKind  domain.ErrorKind
		wantCalls int
	}{
		{"valid", "2026-10-20", "2026-10-22", "", 1},
		{"end before start", "2026-10-22", "2026-10-20", domain.KindValidation, 0},
		{"bad date", "20/10/2026", "2026-10-22", domain.KindValidation, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newValidatingEcho()
			stub := &stubReservationsAPI{}
			handler := NewReservationsHandler(stub)

			body := `{"pet_id":"` + uuid.NewString() + `","start_date":"` + tt.start + `","end_date":"` + tt.end + `"}`
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/reservations", body), rec)

			err := handler.Create(c)
			if tt.wantKind == "" {
				if err != nil || rec.Code != http.StatusCreated {
					t.Fatalf("expected 201, got %d (%v)", rec.Code, err)
				}
			} else if !domain.IsKind(err, tt.wantKind) {
				t.Fatalf("expected %s error, got %v", tt.wantKind, err)
			}
			if stub.created != tt.wantCalls {
				t.Fatalf("expected %d backend calls, got %d", tt.wantCalls, stub.created)
			}
		})
	}
}

func TestReservationsHandler_Get(t *testing.T) {
	e := echo.New()
	stub := &stubReservationsAPI{}
	handler := NewReservationsHandler(stub)
	id := uuid.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/reservations/"+id.String(), nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	if err := handler.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK || stub.fetched != id {
		t.Fatalf("unexpected result: %d, fetched %s", rec.Code, stub.fetched)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/reservations/x", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(missingReservation.String())
	if err := handler.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stub.fetched = uuid.Nil
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/reservations/nope", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")
	var he *echo.HTTPError
	if err := handler.Get(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed id, got %v", err)
	}
	if stub.fetched != uuid.Nil {
		t.Fatalf("backend must not be called")
	}
}
