package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/repo"
)

// TripService implements business logic for trips, their flights and hotels,
// and the sharing grants between users.
type TripService struct {
	trips   repo.TripRepo
	flights repo.FlightRepo
	hotels  repo.HotelRepo
	shares  repo.ShareRepo
	users   repo.UserRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, flights repo.FlightRepo, hotels repo.HotelRepo, shares repo.ShareRepo, users repo.UserRepo) *TripService {
	return &TripService{trips: trips, flights: flights, hotels: hotels, shares: shares, users: users}
}

// Create validates and persists a new trip owned by ownerID, together with
// any flights and hotels supplied inline, and returns the composed view.
func (s *TripService) Create(ctx context.Context, ownerID int64, trip domain.Trip, flights []domain.Flight, hotels []domain.Hotel) (domain.TripView, error) {
	trip.OwnerID = ownerID
	if err := validateTrip(trip); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	for _, f := range flights {
		if err := validateFlight(f); err != nil {
			return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
	}
	for _, h := range hotels {
		if err := validateHotel(h); err != nil {
			return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	for _, f := range flights {
		f.TripID = created.ID
		if _, err := s.flights.Create(ctx, f); err != nil {
			return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
	}
	for _, h := range hotels {
		h.TripID = created.ID
		if _, err := s.hotels.Create(ctx, h); err != nil {
			return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
	}

	view, err := s.compose(ctx, created)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return view, nil
}

// Get returns the composed view of a single trip.
// Existence is checked before authorization: a nonexistent trip is
// domain.ErrNotFound even for users who would not have had access,
// and domain.ErrForbidden only ever refers to a trip that exists.
func (s *TripService) Get(ctx context.Context, userID, tripID int64) (domain.TripView, error) {
	trip, err := s.ensureView(ctx, userID, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Get: %w", err)
	}

	view, err := s.compose(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return view, nil
}

// List returns the composed views of every trip userID can see: trips they
// own followed by trips shared to them. The result is deduplicated by trip
// id — owned trips win — and is an empty slice, never nil, when there are none.
func (s *TripService) List(ctx context.Context, userID int64) ([]domain.TripView, error) {
	owned, err := s.trips.ListOwnedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	shared, err := s.trips.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	seen := make(map[int64]bool, len(owned))
	views := []domain.TripView{}
	for _, t := range append(owned, shared...) {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true

		view, err := s.compose(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("service.TripService.List: %w", err)
		}
		views = append(views, view)
	}
	return views, nil
}

// Share grants the user registered under email read/append access to the trip.
// Only the owner may share; sharing with yourself is rejected; sharing with
// an already-shared user is a silent no-op.
func (s *TripService) Share(ctx context.Context, userID, tripID int64, email string) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Share: %w", err)
	}
	if !domain.CanShare(trip, userID) {
		return fmt.Errorf("service.TripService.Share: %w: only the owner can share the trip", domain.ErrForbidden)
	}

	target, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Unknown target user is a 404, same as an unknown trip.
		return fmt.Errorf("service.TripService.Share: target user: %w", err)
	}
	if target.ID == userID {
		return fmt.Errorf("service.TripService.Share: %w: cannot share a trip with yourself", domain.ErrValidation)
	}

	if err := s.shares.Create(ctx, domain.TripShare{TripID: tripID, UserID: target.ID}); err != nil {
		return fmt.Errorf("service.TripService.Share: %w", err)
	}
	return nil
}

// AddFlight appends a flight to the trip and returns the refreshed view.
// Owners and shared viewers may both append.
func (s *TripService) AddFlight(ctx context.Context, userID, tripID int64, flight domain.Flight) (domain.TripView, error) {
	trip, err := s.ensureModify(ctx, userID, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddFlight: %w", err)
	}
	if err := validateFlight(flight); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddFlight: %w", err)
	}

	flight.TripID = tripID
	if _, err := s.flights.Create(ctx, flight); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddFlight: %w", err)
	}

	view, err := s.compose(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddFlight: %w", err)
	}
	return view, nil
}

// AddHotel appends a hotel stay to the trip and returns the refreshed view.
// Owners and shared viewers may both append.
func (s *TripService) AddHotel(ctx context.Context, userID, tripID int64, hotel domain.Hotel) (domain.TripView, error) {
	trip, err := s.ensureModify(ctx, userID, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddHotel: %w", err)
	}
	if err := validateHotel(hotel); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddHotel: %w", err)
	}

	hotel.TripID = tripID
	if _, err := s.hotels.Create(ctx, hotel); err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddHotel: %w", err)
	}

	view, err := s.compose(ctx, trip)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.AddHotel: %w", err)
	}
	return view, nil
}

// ensureView loads the trip and checks read access, in that order.
func (s *TripService) ensureView(ctx context.Context, userID, tripID int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}

	hasShare := false
	if trip.OwnerID != userID {
		hasShare, err = s.shares.Exists(ctx, tripID, userID)
		if err != nil {
			return domain.Trip{}, err
		}
	}
	if !domain.CanView(trip, userID, hasShare) {
		return domain.Trip{}, fmt.Errorf("%w: not authorized for this trip", domain.ErrForbidden)
	}
	return trip, nil
}

// ensureModify loads the trip and checks append access.
// Append access equals view access, so this delegates to ensureView.
func (s *TripService) ensureModify(ctx context.Context, userID, tripID int64) (domain.Trip, error) {
	return s.ensureView(ctx, userID, tripID)
}

// compose builds the TripView read model: the trip row with its flights,
// hotels, and shared user ids embedded, each in id-ascending order.
func (s *TripService) compose(ctx context.Context, trip domain.Trip) (domain.TripView, error) {
	flights, err := s.flights.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.TripView{}, err
	}
	hotels, err := s.hotels.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.TripView{}, err
	}
	sharedIDs, err := s.shares.ListUserIDs(ctx, trip.ID)
	if err != nil {
		return domain.TripView{}, err
	}

	// Embedded slices are never nil so the JSON encoding is always an array.
	if flights == nil {
		flights = []domain.Flight{}
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	if sharedIDs == nil {
		sharedIDs = []int64{}
	}

	return domain.TripView{
		Trip:              trip,
		Flights:           flights,
		Hotels:            hotels,
		SharedWithUserIDs: sharedIDs,
	}, nil
}

// validateTrip enforces the trip creation rules.
func validateTrip(t domain.Trip) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// validateFlight enforces the flight append rules.
func validateFlight(f domain.Flight) error {
	switch {
	case strings.TrimSpace(f.Airline) == "":
		return fmt.Errorf("%w: airline is required", domain.ErrValidation)
	case strings.TrimSpace(f.DepartureAirport) == "":
		return fmt.Errorf("%w: departure_airport is required", domain.ErrValidation)
	case strings.TrimSpace(f.ArrivalAirport) == "":
		return fmt.Errorf("%w: arrival_airport is required", domain.ErrValidation)
	case f.DepartureTime.IsZero() || f.ArrivalTime.IsZero():
		return fmt.Errorf("%w: departure_time and arrival_time are required", domain.ErrValidation)
	}
	return nil
}

// validateHotel enforces the hotel append rules.
func validateHotel(h domain.Hotel) error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case strings.TrimSpace(h.City) == "":
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	case h.CheckIn.IsZero() || h.CheckOut.IsZero():
		return fmt.Errorf("%w: check_in and check_out are required", domain.ErrValidation)
	}
	return nil
}
