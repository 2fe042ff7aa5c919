package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/handler"
)

// Hand-written test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	register func(ctx context.Context, email, password string) (domain.User, error)
	login    func(ctx context.Context, email, password string) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, email, password string) (domain.User, error) {
	return m.register(ctx, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}

type mockTripServicer struct {
	create    func(ctx context.Context, ownerID int64, trip domain.Trip, flights []domain.Flight, hotels []domain.Hotel) (domain.TripView, error)
	get       func(ctx context.Context, userID, tripID int64) (domain.TripView, error)
	list      func(ctx context.Context, userID int64) ([]domain.TripView, error)
	share     func(ctx context.Context, userID, tripID int64, email string) error
	addFlight func(ctx context.Context, userID, tripID int64, flight domain.Flight) (domain.TripView, error)
	addHotel  func(ctx context.Context, userID, tripID int64, hotel domain.Hotel) (domain.TripView, error)
}

func (m *mockTripServicer) Create(ctx context.Context, ownerID int64, trip domain.Trip, flights []domain.Flight, hotels []domain.Hotel) (domain.TripView, error) {
	return m.create(ctx, ownerID, trip, flights, hotels)
}
func (m *mockTripServicer) Get(ctx context.Context, userID, tripID int64) (domain.TripView, error) {
	return m.get(ctx, userID, tripID)
}
func (m *mockTripServicer) List(ctx context.Context, userID int64) ([]domain.TripView, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Share(ctx context.Context, userID, tripID int64, email string) error {
	return m.share(ctx, userID, tripID, email)
}
func (m *mockTripServicer) AddFlight(ctx context.Context, userID, tripID int64, f domain.Flight) (domain.TripView, error) {
	return m.addFlight(ctx, userID, tripID, f)
}
func (m *mockTripServicer) AddHotel(ctx context.Context, userID, tripID int64, h domain.Hotel) (domain.TripView, error) {
	return m.addHotel(ctx, userID, tripID, h)
}

// stubIssuer resolves the fixed test token to a configurable user id and
// issues a fixed token string. It stands in for the real JWT issuer so
// handler tests stay independent of signing details.
type stubIssuer struct {
	userID int64
}

const testToken = "test-token"

func (s *stubIssuer) Issue(userID int64) (string, error) { return testToken, nil }

func (s *stubIssuer) Resolve(raw string) (int64, error) {
	if raw != testToken {
		return 0, domain.ErrUnauthenticated
	}
	return s.userID, nil
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.AuthServicer = (*mockAuthServicer)(nil)
	_ handler.TripServicer = (*mockTripServicer)(nil)
	_ handler.TokenIssuer  = (*stubIssuer)(nil)
)

// errBoom stands in for an unexpected infrastructure failure.
var errBoom = errors.New("db exploded")

// newHandler wires a Server with the given mocks into the real chi router,
// mirroring exactly how main.go wires it in production.
func newHandler(auth handler.AuthServicer, trips handler.TripServicer, tokens handler.TokenIssuer) http.Handler {
	return handler.NewServer(auth, trips, tokens).Router()
}
