package domain

import (
	"errors"
	"time"
)

// PropertyType is the category of a property.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypeVilla     PropertyType = "villa"
)

// PropertyTypes lists every accepted property type, in the order used by
// validation messages.
var PropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeHouse,
	PropertyTypeStudio,
	PropertyTypeVilla,
}

var ErrPropertyNotFound = errors.New("property not found")

// Column limits, in characters.
const (
	MaxPropertyNameLength = 200
	MaxCityLength         = 100
	MaxRoomNameLength     = 100
)

// Valid reports whether t is one of PropertyTypes.
func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Room is a named, sized part of a property. It has no identity of its own.
type Room struct {
	Name string
	Size float64
}

// Property is the aggregate root: a property and its ordered rooms.
type Property struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Type        PropertyType
	City        string
	Rooms       []Room
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID is the owner recorded on the property.
func (p *Property) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}
