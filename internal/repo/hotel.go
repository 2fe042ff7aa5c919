package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nwarren/tripshare/internal/domain"
)

// HotelRepo defines the persistence operations for Hotel stays.
type HotelRepo interface {
	// Create inserts a new hotel stay under its trip and returns the persisted record.
	Create(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error)

	// ListByTripID returns all hotel stays for a trip, ordered by id ascending.
	ListByTripID(ctx context.Context, tripID int64) ([]domain.Hotel, error)
}

// pgHotelRepo is the Postgres implementation of HotelRepo.
type pgHotelRepo struct {
	db db
}

// NewHotelRepo constructs a HotelRepo backed by the provided db connection.
func NewHotelRepo(db db) HotelRepo {
	return &pgHotelRepo{db: db}
}

func (r *pgHotelRepo) Create(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error) {
	const q = `
		INSERT INTO hotels (trip_id, name, city, check_in, check_out)
		VALUES (@trip_id, @name, @city, @check_in, @check_out)
		RETURNING id, trip_id, name, city, check_in, check_out`

	args := pgx.NamedArgs{
		"trip_id":   hotel.TripID,
		"name":      hotel.Name,
		"city":      hotel.City,
		"check_in":  hotel.CheckIn,
		"check_out": hotel.CheckOut,
	}

	result, err := scanHotel(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("repo.HotelRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgHotelRepo) ListByTripID(ctx context.Context, tripID int64) ([]domain.Hotel, error) {
	const q = `
		SELECT id, trip_id, name, city, check_in, check_out
		FROM hotels
		WHERE trip_id = @trip_id
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.HotelRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	hotels := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.HotelRepo.ListByTripID: scan: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HotelRepo.ListByTripID: rows: %w", err)
	}
	return hotels, nil
}

// scanHotel maps a single database row into a domain.Hotel.
// check_in and check_out are date columns, scanned through pgtype.Date.
func scanHotel(s scanner) (domain.Hotel, error) {
	var (
		h        domain.Hotel
		checkIn  pgtype.Date
		checkOut pgtype.Date
	)
	err := s.Scan(&h.ID, &h.TripID, &h.Name, &h.City, &checkIn, &checkOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	h.CheckIn = checkIn.Time
	h.CheckOut = checkOut.Time
	return h, nil
}
