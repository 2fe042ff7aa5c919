package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nwarren/tripshare/internal/domain"
)

// ShareRepo defines the persistence operations for trip access grants.
type ShareRepo interface {
	// Create grants userID read/append access to tripID.
	// Idempotent — granting an existing share is a no-op, not an error.
	Create(ctx context.Context, share domain.TripShare) error

	// Exists reports whether a share row exists for (tripID, userID).
	Exists(ctx context.Context, tripID, userID int64) (bool, error)

	// ListUserIDs returns the ids of all users the trip is shared with,
	// ordered ascending.
	ListUserIDs(ctx context.Context, tripID int64) ([]int64, error)
}

// pgShareRepo is the Postgres implementation of ShareRepo.
type pgShareRepo struct {
	db db
}

// NewShareRepo constructs a ShareRepo backed by the provided db connection.
func NewShareRepo(db db) ShareRepo {
	return &pgShareRepo{db: db}
}

// Create grants access. Idempotent via ON CONFLICT DO NOTHING on the
// (trip_id, user_id) primary key, so a repeated share never creates a
// duplicate row and never fails.
func (r *pgShareRepo) Create(ctx context.Context, share domain.TripShare) error {
	const q = `
		INSERT INTO trip_shares (trip_id, user_id)
		VALUES (@trip_id, @user_id)
		ON CONFLICT (trip_id, user_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": share.TripID, "user_id": share.UserID})
	if err != nil {
		return fmt.Errorf("repo.ShareRepo.Create: %w", err)
	}
	return nil
}

// Exists reports whether (tripID, userID) holds a share.
func (r *pgShareRepo) Exists(ctx context.Context, tripID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM trip_shares
			WHERE trip_id = @trip_id AND user_id = @user_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.ShareRepo.Exists: %w", err)
	}
	return exists, nil
}

// ListUserIDs returns all user ids holding a share on the trip, ascending.
func (r *pgShareRepo) ListUserIDs(ctx context.Context, tripID int64) ([]int64, error) {
	const q = `
		SELECT user_id
		FROM trip_shares
		WHERE trip_id = @trip_id
		ORDER BY user_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ShareRepo.ListUserIDs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.ShareRepo.ListUserIDs: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ShareRepo.ListUserIDs: rows: %w", err)
	}
	return ids, nil
}
