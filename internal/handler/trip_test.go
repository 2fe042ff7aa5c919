package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/handler"
)

func viewFixture() domain.TripView {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	return domain.TripView{
		Trip: domain.Trip{
			ID:        10,
			Name:      "Paris",
			OwnerID:   1,
			StartDate: &start,
		},
		Flights: []domain.Flight{{
			ID:               100,
			TripID:           10,
			Airline:          "Air France",
			DepartureAirport: "JFK",
			ArrivalAirport:   "CDG",
			DepartureTime:    time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC),
			ArrivalTime:      time.Date(2025, 9, 2, 7, 30, 0, 0, time.UTC),
		}},
		Hotels: []domain.Hotel{{
			ID:       200,
			TripID:   10,
			Name:     "Hotel Lutetia",
			City:     "Paris",
			CheckIn:  time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		}},
		SharedWithUserIDs: []int64{},
	}
}

// authedRequest builds a request carrying the stub bearer token.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeTrip(t *testing.T, rec *httptest.ResponseRecorder) handler.TripResponse {
	t.Helper()
	var resp handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	trips := &mockTripServicer{
		create: func(_ context.Context, ownerID int64, trip domain.Trip, flights []domain.Flight, hotels []domain.Hotel) (domain.TripView, error) {
			require.Equal(t, int64(1), ownerID)
			require.Equal(t, "Paris", trip.Name)
			require.Len(t, flights, 1)
			require.Len(t, hotels, 1)
			return viewFixture(), nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{
		"name":       "Paris",
		"start_date": "2025-09-01",
		"flights": []map[string]any{{
			"airline":           "Air France",
			"departure_airport": "JFK",
			"arrival_airport":   "CDG",
			"departure_time":    "2025-09-01T18:00:00Z",
			"arrival_time":      "2025-09-02T07:30:00Z",
		}},
		"hotels": []map[string]any{{
			"name":      "Hotel Lutetia",
			"city":      "Paris",
			"check_in":  "2025-09-02",
			"check_out": "2025-09-08",
		}},
	})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeTrip(t, rec)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "Paris", resp.Name)
	assert.Equal(t, int64(1), resp.OwnerID)
	require.Len(t, resp.Flights, 1)
	require.Len(t, resp.Hotels, 1)
	assert.Equal(t, []int64{}, resp.SharedWithUserIDs)
}

func TestCreateTrip_401_NoToken(t *testing.T) {
	h := newHandler(nil, &mockTripServicer{}, &stubIssuer{userID: 1})

	req := httptest.NewRequest(http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": "Paris"}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTrip_422_Validation(t *testing.T) {
	trips := &mockTripServicer{
		create: func(_ context.Context, _ int64, _ domain.Trip, _ []domain.Flight, _ []domain.Hotel) (domain.TripView, error) {
			return domain.TripView{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": ""})))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "name is required", decodeError(t, rec).Error.Message)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	trips := &mockTripServicer{
		list: func(_ context.Context, userID int64) ([]domain.TripView, error) {
			require.Equal(t, int64(1), userID)
			return []domain.TripView{viewFixture()}, nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(10), resp[0].ID)
}

func TestListTrips_200_EmptyIsArray(t *testing.T) {
	trips := &mockTripServicer{
		list: func(_ context.Context, _ int64) ([]domain.TripView, error) {
			return []domain.TripView{}, nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	trips := &mockTripServicer{
		get: func(_ context.Context, userID, tripID int64) (domain.TripView, error) {
			require.Equal(t, int64(1), userID)
			require.Equal(t, int64(10), tripID)
			return viewFixture(), nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// Dates serialise as plain YYYY-MM-DD strings.
	raw := rec.Body.String()
	assert.Contains(t, raw, `"start_date":"2025-09-01"`)

	resp := decodeTrip(t, rec)
	assert.Equal(t, "Paris", resp.Name)
	require.NotNil(t, resp.StartDate)
}

func TestGetTrip_404(t *testing.T) {
	trips := &mockTripServicer{
		get: func(_ context.Context, _, _ int64) (domain.TripView, error) {
			return domain.TripView{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrNotFound)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestGetTrip_403(t *testing.T) {
	trips := &mockTripServicer{
		get: func(_ context.Context, _, _ int64) (domain.TripView, error) {
			return domain.TripView{}, fmt.Errorf("service.TripService.Get: %w: not authorized for this trip", domain.ErrForbidden)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 3})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/10", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Error.Code)
}

func TestGetTrip_404_NonNumericID(t *testing.T) {
	h := newHandler(nil, &mockTripServicer{}, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/paris", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_500_Generic(t *testing.T) {
	trips := &mockTripServicer{
		get: func(_ context.Context, _, _ int64) (domain.TripView, error) {
			return domain.TripView{}, errBoom
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/10", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Infrastructure detail must not leak to the client.
	assert.NotContains(t, rec.Body.String(), "db exploded")
}

// ---- POST /trips/{id}/share ------------------------------------------------

func TestShareTrip_204(t *testing.T) {
	trips := &mockTripServicer{
		share: func(_ context.Context, userID, tripID int64, email string) error {
			require.Equal(t, int64(1), userID)
			require.Equal(t, int64(10), tripID)
			require.Equal(t, "bob@example.com", email)
			return nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{"email": "bob@example.com"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/share", body))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestShareTrip_403_NotOwner(t *testing.T) {
	trips := &mockTripServicer{
		share: func(_ context.Context, _, _ int64, _ string) error {
			return fmt.Errorf("%w: only the owner can share the trip", domain.ErrForbidden)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 2})

	body := jsonBody(t, map[string]any{"email": "carol@example.com"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/share", body))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestShareTrip_404_TargetUser(t *testing.T) {
	trips := &mockTripServicer{
		share: func(_ context.Context, _, _ int64, _ string) error {
			return fmt.Errorf("service.TripService.Share: target user: %w", domain.ErrNotFound)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{"email": "ghost@example.com"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/share", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Self-share is a 400 by contract, unlike other validation failures.
func TestShareTrip_400_SelfShare(t *testing.T) {
	trips := &mockTripServicer{
		share: func(_ context.Context, _, _ int64, _ string) error {
			return fmt.Errorf("%w: cannot share a trip with yourself", domain.ErrValidation)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{"email": "alice@example.com"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/share", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot share a trip with yourself", decodeError(t, rec).Error.Message)
}

// ---- POST /trips/{id}/flights and /hotels ----------------------------------

func TestAddFlight_200(t *testing.T) {
	trips := &mockTripServicer{
		addFlight: func(_ context.Context, userID, tripID int64, f domain.Flight) (domain.TripView, error) {
			require.Equal(t, int64(10), tripID)
			require.Equal(t, "Air France", f.Airline)
			return viewFixture(), nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{
		"airline":           "Air France",
		"departure_airport": "JFK",
		"arrival_airport":   "CDG",
		"departure_time":    "2025-09-01T18:00:00Z",
		"arrival_time":      "2025-09-02T07:30:00Z",
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/flights", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeTrip(t, rec).Flights, 1)
}

func TestAddHotel_200(t *testing.T) {
	trips := &mockTripServicer{
		addHotel: func(_ context.Context, _, tripID int64, h domain.Hotel) (domain.TripView, error) {
			require.Equal(t, int64(10), tripID)
			require.Equal(t, "Hotel Lutetia", h.Name)
			require.Equal(t, 2025, h.CheckIn.Year())
			return viewFixture(), nil
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{
		"name":      "Hotel Lutetia",
		"city":      "Paris",
		"check_in":  "2025-09-02",
		"check_out": "2025-09-08",
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/10/hotels", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"check_in":"2025-09-02"`)
	require.Len(t, decodeTrip(t, rec).Hotels, 1)
}

func TestAddHotel_404(t *testing.T) {
	trips := &mockTripServicer{
		addHotel: func(_ context.Context, _, _ int64, _ domain.Hotel) (domain.TripView, error) {
			return domain.TripView{}, fmt.Errorf("service.TripService.AddHotel: %w", domain.ErrNotFound)
		},
	}
	h := newHandler(nil, trips, &stubIssuer{userID: 1})

	body := jsonBody(t, map[string]any{
		"name": "Hotel Lutetia", "city": "Paris",
		"check_in": "2025-09-02", "check_out": "2025-09-08",
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/99/hotels", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
