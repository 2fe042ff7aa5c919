package domain

import "time"

// Trip is the top-level aggregate: a named itinerary owned by exactly one
// user, containing flights and hotel stays. StartDate and EndDate are
// date-only and nil when the user has not picked dates yet.
type Trip struct {
	ID        int64
	Name      string
	OwnerID   int64
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}
