package domain

import "time"

// TripShare is a grant of read/append access from a trip's owner to another
// user. The (TripID, UserID) pair is the primary key — at most one share row
// exists per pair, and a user is never a share target of their own trip.
type TripShare struct {
	TripID    int64
	UserID    int64
	CreatedAt time.Time
}
