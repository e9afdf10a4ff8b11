// Package vehicle provides vehicle classification types shared across the
// pricing engine and the quoting API.
package vehicle

// Class represents the pricing classification of a transported vehicle.
type Class string

const (
	ClassSedan        Class = "sedan"
	ClassSUV          Class = "suv"
	ClassVan          Class = "van"
	ClassPickup2Doors Class = "pickup_2_doors"
	ClassPickup4Doors Class = "pickup_4_doors"
)

// AllClasses returns every valid pricing class.
func AllClasses() []Class {
	return []Class{
		ClassSedan,
		ClassSUV,
		ClassVan,
		ClassPickup2Doors,
		ClassPickup4Doors,
	}
}

// IsValid reports whether the class is a known pricing class.
func (c Class) IsValid() bool {
	switch c {
	case ClassSedan, ClassSUV, ClassVan, ClassPickup2Doors, ClassPickup4Doors:
		return true
	}
	return false
}

// String returns the wire representation of the class.
func (c Class) String() string { return string(c) }

// DisplayName returns a human-readable name for quote documents and emails.
func (c Class) DisplayName() string {
	switch c {
	case ClassSedan:
		return "Sedan"
	case ClassSUV:
		return "SUV"
	case ClassVan:
		return "Van"
	case ClassPickup2Doors:
		return "Pickup (2 doors)"
	case ClassPickup4Doors:
		return "Pickup (4 doors)"
	default:
		return "Unknown"
	}
}

// TransportType is the carrier service class a vehicle ships under.
type TransportType string

const (
	TransportOpen     TransportType = "open"
	TransportEnclosed TransportType = "enclosed"
)

// IsValid reports whether the transport type is known.
func (t TransportType) IsValid() bool {
	return t == TransportOpen || t == TransportEnclosed
}

// String returns the wire representation of the transport type.
func (t TransportType) String() string { return string(t) }
