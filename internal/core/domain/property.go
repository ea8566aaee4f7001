package domain

import (
	"strings"
	"time"
)

// RentalType is the billing cadence of a listing.
type RentalType string

const (
	RentalDaily   RentalType = "DAILY"
	RentalMonthly RentalType = "MONTHLY"
	RentalYearly  RentalType = "YEARLY"
)

// ParseRentalType normalizes and validates a rental type. Inputs are accepted
// in any casing ("monthly" and "MONTHLY" are the same value).
func ParseRentalType(s string) (RentalType, bool) {
	rt := RentalType(strings.ToUpper(strings.TrimSpace(s)))
	switch rt {
	case RentalDaily, RentalMonthly, RentalYearly:
		return rt, true
	}
	return "", false
}

// PropertyType is the kind of dwelling being listed.
type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
	PropertyVilla     PropertyType = "VILLA"
	PropertyStudio    PropertyType = "STUDIO"
	PropertyCottage   PropertyType = "COTTAGE"
)

// ParsePropertyType normalizes and validates a property type.
func ParsePropertyType(s string) (PropertyType, bool) {
	pt := PropertyType(strings.ToUpper(strings.TrimSpace(s)))
	switch pt {
	case PropertyApartment, PropertyHouse, PropertyVilla, PropertyStudio, PropertyCottage:
		return pt, true
	}
	return "", false
}

// Property is a rental listing. OwnerID references a user in the user
// service's store; it is stamped once at creation from the authenticated
// caller and never changed by update or delete.
type Property struct {
	ID           int64        `json:"id"`
	OwnerID      int64        `json:"ownerId"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	RentalType   RentalType   `json:"rentalType"`
	Price        float64      `json:"price"`
	Location     string       `json:"location"`
	PropertyType PropertyType `json:"propertyType"`
	CreatedAt    time.Time    `json:"createdAt"`
}
