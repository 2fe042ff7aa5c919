package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nwarren/tripshare/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// ListOwnedBy returns all trips owned by userID, ordered by id ascending.
	ListOwnedBy(ctx context.Context, userID int64) ([]domain.Trip, error)

	// ListSharedWith returns all trips shared to userID via trip_shares,
	// ordered by id ascending.
	ListSharedWith(ctx context.Context, userID int64) ([]domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, owner_id, start_date, end_date)
		VALUES (@name, @owner_id, @start_date, @end_date)
		RETURNING id, name, owner_id, start_date, end_date, created_at`

	args := pgx.NamedArgs{
		"name":       trip.Name,
		"owner_id":   trip.OwnerID,
		"start_date": trip.StartDate, // nil becomes NULL
		"end_date":   trip.EndDate,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `
		SELECT id, name, owner_id, start_date, end_date, created_at
		FROM trips
		WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListOwnedBy returns all trips owned by userID, ordered by id ascending.
func (r *pgTripRepo) ListOwnedBy(ctx context.Context, userID int64) ([]domain.Trip, error) {
	const q = `
		SELECT id, name, owner_id, start_date, end_date, created_at
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"owner_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListOwnedBy: %w", err)
	}
	return trips, nil
}

// ListSharedWith returns all trips granted to userID through trip_shares,
// ordered by id ascending.
func (r *pgTripRepo) ListSharedWith(ctx context.Context, userID int64) ([]domain.Trip, error) {
	const q = `
		SELECT t.id, t.name, t.owner_id, t.start_date, t.end_date, t.created_at
		FROM trips t
		JOIN trip_shares s ON s.trip_id = t.id
		WHERE s.user_id = @user_id
		ORDER BY t.id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListSharedWith: %w", err)
	}
	return trips, nil
}

// queryTrips runs a multi-row trip query and scans all results.
func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the nullable start_date and end_date conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&t.ID, &t.Name, &t.OwnerID, &startDate, &endDate, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if startDate.Valid {
		sd := startDate.Time
		t.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		t.EndDate = &ed
	}

	return t, nil
}
