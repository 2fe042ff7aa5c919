package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwarren/tripshare/internal/domain"
	"github.com/nwarren/tripshare/internal/repo"
)

func flightFixture(tripID int64) domain.Flight {
	return domain.Flight{
		TripID:           tripID,
		Airline:          "Air France",
		DepartureAirport: "JFK",
		ArrivalAirport:   "CDG",
		DepartureTime:    time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC),
		ArrivalTime:      time.Date(2025, 9, 2, 7, 30, 0, 0, time.UTC),
	}
}

func TestFlightRepo_Create(t *testing.T) {
	tx := testTx(t)
	r := repo.NewFlightRepo(tx)
	ctx := context.Background()

	owner := mustCreateUser(t, tx, "alice@example.com")
	trip := mustCreateTrip(t, tx, owner.ID, "Paris")

	got, err := r.Create(ctx, flightFixture(trip.ID))

	require.NoError(t, err)
	assert.Positive(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, "Air France", got.Airline)
	assert.True(t, got.DepartureTime.Equal(time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC)))
}

func TestFlightRepo_ListByTripID(t *testing.T) {
	tx := testTx(t)
	r := repo.NewFlightRepo(tx)
	ctx := context.Background()

	owner := mustCreateUser(t, tx, "alice@example.com")
	trip := mustCreateTrip(t, tx, owner.ID, "Paris")
	other := mustCreateTrip(t, tx, owner.ID, "Rome")

	outbound, err := r.Create(ctx, flightFixture(trip.ID))
	require.NoError(t, err)

	ret := flightFixture(trip.ID)
	ret.DepartureAirport, ret.ArrivalAirport = "CDG", "JFK"
	inbound, err := r.Create(ctx, ret)
	require.NoError(t, err)

	_, err = r.Create(ctx, flightFixture(other.ID))
	require.NoError(t, err)

	flights, err := r.ListByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, flights, 2, "only the trip's own flights should be listed")
	assert.Equal(t, outbound.ID, flights[0].ID)
	assert.Equal(t, inbound.ID, flights[1].ID)
}

func TestFlightRepo_ListByTripID_Empty(t *testing.T) {
	tx := testTx(t)
	r := repo.NewFlightRepo(tx)

	owner := mustCreateUser(t, tx, "alice@example.com")
	trip := mustCreateTrip(t, tx, owner.ID, "Paris")

	flights, err := r.ListByTripID(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.NotNil(t, flights, "empty result should be a slice, not nil")
	assert.Empty(t, flights)
}
