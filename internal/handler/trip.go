package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nwarren/tripshare/internal/domain"
)

// FlightCreateRequest is a flight in POST /trips and POST /trips/{id}/flights.
type FlightCreateRequest struct {
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

// HotelCreateRequest is a hotel stay in POST /trips and POST /trips/{id}/hotels.
type HotelCreateRequest struct {
	Name     string             `json:"name"`
	City     string             `json:"city"`
	CheckIn  openapi_types.Date `json:"check_in"`
	CheckOut openapi_types.Date `json:"check_out"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Name      string                `json:"name"`
	StartDate *openapi_types.Date   `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date   `json:"end_date,omitempty"`
	Flights   []FlightCreateRequest `json:"flights"`
	Hotels    []HotelCreateRequest  `json:"hotels"`
}

// ShareRequest is the body of POST /trips/{id}/share.
type ShareRequest struct {
	Email openapi_types.Email `json:"email"`
}

// FlightResponse is a flight embedded in a TripResponse.
type FlightResponse struct {
	ID               int64     `json:"id"`
	Airline          string    `json:"airline"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

// HotelResponse is a hotel stay embedded in a TripResponse.
type HotelResponse struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	City     string             `json:"city"`
	CheckIn  openapi_types.Date `json:"check_in"`
	CheckOut openapi_types.Date `json:"check_out"`
}

// TripResponse is the composite read representation of a trip: its own
// fields with flights, hotels, and the shared user ids embedded.
type TripResponse struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	OwnerID           int64               `json:"owner_id"`
	StartDate         *openapi_types.Date `json:"start_date,omitempty"`
	EndDate           *openapi_types.Date `json:"end_date,omitempty"`
	Flights           []FlightResponse    `json:"flights"`
	Hotels            []HotelResponse     `json:"hotels"`
	SharedWithUserIDs []int64             `json:"shared_with_user_ids"`
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	trip, flights, hotels := requestToTrip(req)
	view, err := s.trips.Create(r.Context(), userID, trip, flights, hotels)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, viewToResponse(view))
}

// handleListTrips handles GET /trips: all trips owned by or shared with the caller.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}

	views, err := s.trips.List(r.Context(), userID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	out := make([]TripResponse, len(views))
	for i, v := range views {
		out[i] = viewToResponse(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}

	view, err := s.trips.Get(r.Context(), userID, tripID)
	if err != nil {
		s.respondTripError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// handleShareTrip handles POST /trips/{tripID}/share.
// Success is 204 with no body; sharing with an already-shared user is a
// silent no-op.
func (s *Server) handleShareTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if err := s.trips.Share(r.Context(), userID, tripID, string(req.Email)); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			// Self-share is a 400 by contract, not a 422.
			writeError(w, r, http.StatusBadRequest, "validation_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, r, http.StatusForbidden, "forbidden", unwrapMessage(err))
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, r, http.StatusNotFound, "not_found", "trip or user not found")
		default:
			internalError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAddFlight handles POST /trips/{tripID}/flights.
func (s *Server) handleAddFlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}

	var req FlightCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	view, err := s.trips.AddFlight(r.Context(), userID, tripID, requestToFlight(req))
	if err != nil {
		s.respondTripError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// handleAddHotel handles POST /trips/{tripID}/hotels.
func (s *Server) handleAddHotel(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}

	var req HotelCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	view, err := s.trips.AddHotel(r.Context(), userID, tripID, requestToHotel(req))
	if err != nil {
		s.respondTripError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// respondTripError maps the common trip-scoped error outcomes.
// Not-found is checked before forbidden at the service layer, so the 404
// case here never masks a 403.
func (s *Server) respondTripError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "trip not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "forbidden", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		internalError(w, r, err)
	}
}

// parseTripID extracts the {tripID} path parameter. A non-numeric id names
// no trip, so it reports 404 rather than a validation failure.
func parseTripID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "not_found", "trip not found")
		return 0, false
	}
	return id, true
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest into domain values.
func requestToTrip(req CreateTripRequest) (domain.Trip, []domain.Flight, []domain.Hotel) {
	t := domain.Trip{Name: req.Name}
	if req.StartDate != nil {
		sd := req.StartDate.Time
		t.StartDate = &sd
	}
	if req.EndDate != nil {
		ed := req.EndDate.Time
		t.EndDate = &ed
	}

	flights := make([]domain.Flight, len(req.Flights))
	for i, f := range req.Flights {
		flights[i] = requestToFlight(f)
	}
	hotels := make([]domain.Hotel, len(req.Hotels))
	for i, h := range req.Hotels {
		hotels[i] = requestToHotel(h)
	}
	return t, flights, hotels
}

func requestToFlight(req FlightCreateRequest) domain.Flight {
	return domain.Flight{
		Airline:          req.Airline,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
	}
}

func requestToHotel(req HotelCreateRequest) domain.Hotel {
	return domain.Hotel{
		Name:     req.Name,
		City:     req.City,
		CheckIn:  req.CheckIn.Time,
		CheckOut: req.CheckOut.Time,
	}
}

// viewToResponse converts a domain.TripView into the wire representation.
func viewToResponse(v domain.TripView) TripResponse {
	resp := TripResponse{
		ID:                v.ID,
		Name:              v.Name,
		OwnerID:           v.OwnerID,
		Flights:           make([]FlightResponse, len(v.Flights)),
		Hotels:            make([]HotelResponse, len(v.Hotels)),
		SharedWithUserIDs: v.SharedWithUserIDs,
	}
	if v.StartDate != nil {
		sd := openapi_types.Date{Time: *v.StartDate}
		resp.StartDate = &sd
	}
	if v.EndDate != nil {
		ed := openapi_types.Date{Time: *v.EndDate}
		resp.EndDate = &ed
	}
	for i, f := range v.Flights {
		resp.Flights[i] = FlightResponse{
			ID:               f.ID,
			Airline:          f.Airline,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
		}
	}
	for i, h := range v.Hotels {
		resp.Hotels[i] = HotelResponse{
			ID:       h.ID,
			Name:     h.Name,
			City:     h.City,
			CheckIn:  openapi_types.Date{Time: h.CheckIn},
			CheckOut: openapi_types.Date{Time: h.CheckOut},
		}
	}
	return resp
}
