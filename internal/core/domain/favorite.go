package domain

import "time"

// Favorite links a user to a property they bookmarked. The (UserID,
// PropertyID) pair is unique; the storage layer enforces it with a compound
// index so concurrent inserts cannot slip a duplicate past the service-level
// check. The referenced property lives in another store, so its existence is
// validated with a lookup at create/update time, not a foreign key.
type Favorite struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	PropertyID int64     `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}
