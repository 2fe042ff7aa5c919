package domain

import "time"

// Hotel is a hotel stay belonging to one trip.
// CheckIn and CheckOut are date-only.
type Hotel struct {
	ID       int64
	TripID   int64
	Name     string
	City     string
	CheckIn  time.Time
	CheckOut time.Time
}
