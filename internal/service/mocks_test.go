package service_test

import (
	"context"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	getByID    func(ctx context.Context, id int64) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}

type mockTripRepo struct {
	create         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID        func(ctx context.Context, id int64) (domain.Trip, error)
	listOwnedBy    func(ctx context.Context, userID int64) ([]domain.Trip, error)
	listSharedWith func(ctx context.Context, userID int64) ([]domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListOwnedBy(ctx context.Context, userID int64) ([]domain.Trip, error) {
	return m.listOwnedBy(ctx, userID)
}
func (m *mockTripRepo) ListSharedWith(ctx context.Context, userID int64) ([]domain.Trip, error) {
	return m.listSharedWith(ctx, userID)
}

type mockFlightRepo struct {
	create       func(ctx context.Context, flight domain.Flight) (domain.Flight, error)
	listByTripID func(ctx context.Context, tripID int64) ([]domain.Flight, error)
}

func (m *mockFlightRepo) Create(ctx context.Context, f domain.Flight) (domain.Flight, error) {
	return m.create(ctx, f)
}
func (m *mockFlightRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Flight, error) {
	return m.listByTripID(ctx, tripID)
}

type mockHotelRepo struct {
	create       func(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error)
	listByTripID func(ctx context.Context, tripID int64) ([]domain.Hotel, error)
}

func (m *mockHotelRepo) Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	return m.create(ctx, h)
}
func (m *mockHotelRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Hotel, error) {
	return m.listByTripID(ctx, tripID)
}

type mockShareRepo struct {
	create      func(ctx context.Context, share domain.TripShare) error
	exists      func(ctx context.Context, tripID, userID int64) (bool, error)
	listUserIDs func(ctx context.Context, tripID int64) ([]int64, error)
}

func (m *mockShareRepo) Create(ctx context.Context, s domain.TripShare) error {
	return m.create(ctx, s)
}
func (m *mockShareRepo) Exists(ctx context.Context, tripID, userID int64) (bool, error) {
	return m.exists(ctx, tripID, userID)
}
func (m *mockShareRepo) ListUserIDs(ctx context.Context, tripID int64) ([]int64, error) {
	return m.listUserIDs(ctx, tripID)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.UserRepo   = (*mockUserRepo)(nil)
	_ repo.TripRepo   = (*mockTripRepo)(nil)
	_ repo.FlightRepo = (*mockFlightRepo)(nil)
	_ repo.HotelRepo  = (*mockHotelRepo)(nil)
	_ repo.ShareRepo  = (*mockShareRepo)(nil)
)
