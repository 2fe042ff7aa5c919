package domain

// TripView is the composite read model for a trip: the trip's own fields
// with its flights, hotels, and the ids of users it is shared with embedded.
// Flights and Hotels are ordered by id ascending; SharedWithUserIDs is
// ordered ascending. The slices are never nil.
type TripView struct {
	Trip
	Flights           []Flight
	Hotels            []Hotel
	SharedWithUserIDs []int64
}
