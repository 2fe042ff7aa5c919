// Package handler implements the HTTP layer of the tripshare API.
// All handlers are methods on Server; they decode requests, call the
// service interfaces, and map domain errors to status codes. No business
// logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nwarren/tripshare/internal/domain"
)

// AuthServicer defines the credential operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// TripServicer defines the trip operations the handler depends on.
type TripServicer interface {
	Create(ctx context.Context, ownerID int64, trip domain.Trip, flights []domain.Flight, hotels []domain.Hotel) (domain.TripView, error)
	Get(ctx context.Context, userID, tripID int64) (domain.TripView, error)
	List(ctx context.Context, userID int64) ([]domain.TripView, error)
	Share(ctx context.Context, userID, tripID int64, email string) error
	AddFlight(ctx context.Context, userID, tripID int64, flight domain.Flight) (domain.TripView, error)
	AddHotel(ctx context.Context, userID, tripID int64, hotel domain.Hotel) (domain.TripView, error)
}

// TokenIssuer issues tokens at login and resolves them in the auth middleware.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Resolve(raw string) (int64, error)
}

// Server implements all API endpoints.
// Methods are in domain-specific files (auth.go, trip.go) but all operate
// on this struct.
type Server struct {
	auth   AuthServicer
	trips  TripServicer
	tokens TokenIssuer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, trips TripServicer, tokens TokenIssuer) *Server {
	return &Server{auth: auth, trips: trips, tokens: tokens}
}

// Router returns the chi router for all API endpoints.
// Register and login are the only unauthenticated endpoints besides the
// health check; everything under /trips requires a bearer token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/", s.handleCreateTrip)
		r.Get("/", s.handleListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Post("/share", s.handleShareTrip)
			r.Post("/flights", s.handleAddFlight)
			r.Post("/hotels", s.handleAddHotel)
		})
	})

	return r
}

// handleHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
