package model

import "time"

// PropertyType classifies a property in the portfolio.
type PropertyType string

const (
	PropertyCondo      PropertyType = "condo"
	PropertyRentalHome PropertyType = "rental_home"
	PropertyPlaza      PropertyType = "plaza"
	PropertyApartment  PropertyType = "apartment"
	PropertyCommercial PropertyType = "commercial"
)

// ValidPropertyType reports whether t is one of the known property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyCondo, PropertyRentalHome, PropertyPlaza, PropertyApartment, PropertyCommercial:
		return true
	}
	return false
}

// Property is a single property owned by the landlord.
type Property struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          PropertyType `json:"type"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	State         string       `json:"state"`
	ZipCode       string       `json:"zipCode"`
	Units         *int         `json:"units,omitempty"`
	PurchasePrice *float64     `json:"purchasePrice,omitempty"`
	PurchaseDate  *time.Time   `json:"purchaseDate,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	Image         *string      `json:"image,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// NewProperty carries the caller-supplied fields for property creation.
// Identity and timestamps are assigned by the store.
type NewProperty struct {
	Name          string
	Type          PropertyType
	Address       string
	City          string
	State         string
	ZipCode       string
	Units         *int
	PurchasePrice *float64
	PurchaseDate  *time.Time
	Notes         *string
	Image         *string
}

// PropertyUpdate is a partial update; nil fields are left unchanged.
type PropertyUpdate struct {
	Name          *string
	Type          *PropertyType
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	Units         *int
	PurchasePrice *float64
	PurchaseDate  *time.Time
	Notes         *string
	Image         *string
}

// UnitCount returns the declared unit count, or 1 when none is declared.
// A property without a declared count occupies a single unit for
// occupancy purposes.
func (p Property) UnitCount() int {
	if p.Units != nil {
		return *p.Units
	}
	return 1
}
