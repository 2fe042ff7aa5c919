package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nwarren/tripshare/internal/domain"
)

// FlightRepo defines the persistence operations for Flights.
// Flights only ever exist under a trip; there is no standalone flight surface.
type FlightRepo interface {
	// Create inserts a new flight under its trip and returns the persisted record.
	Create(ctx context.Context, flight domain.Flight) (domain.Flight, error)

	// ListByTripID returns all flights for a trip, ordered by id ascending.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.Flight, error)
}

// pgFlightRepo is the Postgres implementation of FlightRepo.
type pgFlightRepo struct {
	db db
}

// NewFlightRepo constructs a FlightRepo backed by the provided db connection.
func NewFlightRepo(db db) FlightRepo {
	return &pgFlightRepo{db: db}
}

func (r *pgFlightRepo) Create(ctx context.Context, flight domain.Flight) (domain.Flight, error) {
	const q = `
		INSERT INTO flights (trip_id, airline, departure_airport, arrival_airport, departure_time, arrival_time)
		VALUES (@trip_id, @airline, @departure_airport, @arrival_airport, @departure_time, @arrival_time)
		RETURNING id, trip_id, airline, departure_airport, arrival_airport, departure_time, arrival_time`

	args := pgx.NamedArgs{
		"trip_id":           flight.TripID,
		"airline":           flight.Airline,
		"departure_airport": flight.DepartureAirport,
		"arrival_airport":   flight.ArrivalAirport,
		"departure_time":    flight.DepartureTime,
		"arrival_time":      flight.ArrivalTime,
	}

	result, err := scanFlight(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Flight{}, fmt.Errorf("repo.FlightRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFlightRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Flight, error) {
	const q = `
		SELECT id, trip_id, airline, departure_airport, arrival_airport, departure_time, arrival_time
		FROM flights
		WHERE trip_id = @trip_id
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	flights := []domain.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FlightRepo.ListByTripID: scan: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FlightRepo.ListByTripID: rows: %w", err)
	}
	return flights, nil
}

// scanFlight maps a single database row into a domain.Flight.
func scanFlight(s scanner) (domain.Flight, error) {
	var f domain.Flight
	err := s.Scan(&f.ID, &f.TripID, &f.Airline, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Flight{}, domain.ErrNotFound
		}
		return domain.Flight{}, err
	}
	return f, nil
}
