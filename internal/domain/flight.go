package domain

import "time"

// Flight is a flight segment belonging to one trip.
// Airport fields hold IATA-style codes; no validation beyond non-emptiness
// is applied to them.
type Flight struct {
	ID               int64
	TripID           int64
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
}
