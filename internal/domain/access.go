package domain

// Access-control decisions are pure functions over a trip, a user id, and
// whether a share row exists for that pair. Keeping them free of any store
// dependency makes the authorization rules testable in isolation; the
// service layer supplies hasShare from the trip_shares table.

// CanView reports whether userID may read the trip: the owner always can,
// and so can any user holding a share.
func CanView(t Trip, userID int64, hasShare bool) bool {
	return t.OwnerID == userID || hasShare
}

// CanModify reports whether userID may append flights and hotels to the
// trip. Shared viewers may append, not just the owner — intentional product
// behavior, not an oversight.
func CanModify(t Trip, userID int64, hasShare bool) bool {
	return CanView(t, userID, hasShare)
}

// CanShare reports whether userID may grant access to the trip.
// Only the owner may share.
func CanShare(t Trip, userID int64) bool {
	return t.OwnerID == userID
}
