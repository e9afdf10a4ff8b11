// Package pricing implements the modifier-based quote calculation engine:
// resolving layered business modifiers, deriving markup-free base rates,
// computing per-vehicle price breakdowns across service-level tiers, and
// aggregating vehicle results into order-level totals. Every function in
// this package is pure; documents are fetched by callers before computation.
package pricing

import (
	"github.com/google/uuid"

	"github.com/McCollisters/autovista-api-sub002/internal/vehicle"
)

// ValueType distinguishes flat dollar amounts from percentages of a basis.
type ValueType string

const (
	Flat    ValueType = "flat"
	Percent ValueType = "percent"
)

// Value is a single flat-or-percent modifier value.
type Value struct {
	Value     float64   `json:"value"`
	ValueType ValueType `json:"valueType"`
}

// AmountOf evaluates the value against the given basis. Percent values are
// expressed as whole percentages (5 means 5%). Unknown value types behave
// as flat so malformed records degrade to a no-op instead of failing.
func (v Value) AmountOf(basis float64) float64 {
	if v.ValueType == Percent {
		return basis * v.Value / 100
	}
	return v.Value
}

// IsZero reports whether the value would never contribute to a price.
func (v Value) IsZero() bool { return v.Value == 0 }

// WhiteGlove prices the premium service as a mileage multiplier with a
// floor minimum. It resolves as a unit: a portal override replaces both
// fields or neither.
type WhiteGlove struct {
	Multiplier float64 `json:"multiplier"`
	Minimum    float64 `json:"minimum"`
}

// Direction scopes a state modifier to one or both legs of the move.
type Direction string

const (
	DirectionPickup   Direction = "pickup"
	DirectionDelivery Direction = "delivery"
	DirectionBoth     Direction = "both"
)

// StateRule is a per-state surcharge or discount keyed by state code.
type StateRule struct {
	Type      ValueType `json:"type"`
	Direction Direction `json:"direction"`
	Amount    float64   `json:"amount"`
}

// RouteRule is a surcharge for a specific origin/destination state pair.
type RouteRule struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Value       float64   `json:"value"`
	ValueType   ValueType `json:"valueType"`
}

// ZipRule is a surcharge for a specific pickup or delivery ZIP code.
type ZipRule struct {
	Zip       string    `json:"zip"`
	Direction Direction `json:"direction"`
	Value     float64   `json:"value"`
	ValueType ValueType `json:"valueType"`
}

// VehicleRule overrides pricing for a specific make/model.
type VehicleRule struct {
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Value     float64   `json:"value"`
	ValueType ValueType `json:"valueType"`
}

// ServiceLevel identifies a delivery-speed tier in business days.
type ServiceLevel string

const (
	LevelOne   ServiceLevel = "1"
	LevelThree ServiceLevel = "3"
	LevelFive  ServiceLevel = "5"
	LevelSeven ServiceLevel = "7"
)

// ServiceLevels lists every tier in ascending speed order.
func ServiceLevels() []ServiceLevel {
	return []ServiceLevel{LevelOne, LevelThree, LevelFive, LevelSeven}
}

// ServiceLevelRule is a tier-specific markup.
type ServiceLevelRule struct {
	ServiceLevelOption ServiceLevel `json:"serviceLevelOption"`
	Value              float64      `json:"value"`
}

// Oversize is the class-keyed surcharge table. Sedans are implicitly zero.
type Oversize struct {
	SUV          float64 `json:"suv"`
	Van          float64 `json:"van"`
	Pickup2Doors float64 `json:"pickup_2_doors"`
	Pickup4Doors float64 `json:"pickup_4_doors"`
}

// For returns the surcharge for the given pricing class.
func (o Oversize) For(class vehicle.Class) float64 {
	switch class {
	case vehicle.ClassSUV:
		return o.SUV
	case vehicle.ClassVan:
		return o.Van
	case vehicle.ClassPickup2Doors:
		return o.Pickup2Doors
	case vehicle.ClassPickup4Doors:
		return o.Pickup4Doors
	default:
		return 0
	}
}

// IsZero reports whether no class carries a surcharge.
func (o Oversize) IsZero() bool {
	return o.SUV == 0 && o.Van == 0 && o.Pickup2Doors == 0 && o.Pickup4Doors == 0
}

// ModifierSet is either the single global modifier configuration
// (IsGlobal=true) or a portal-scoped override (PortalID set). Portal
// records override the global record field-by-field, never wholesale.
type ModifierSet struct {
	ID       uuid.UUID  `json:"id"`
	PortalID *uuid.UUID `json:"portalId,omitempty"`
	IsGlobal bool       `json:"isGlobal"`

	Inoperable Value       `json:"inoperable"`
	Fuel       Value       `json:"fuel"`
	IRR        Value       `json:"irr"`
	WhiteGlove *WhiteGlove `json:"whiteGlove,omitempty"`
	Oversize   Oversize    `json:"oversize"`

	EnclosedFlat    float64 `json:"enclosedFlat"`
	EnclosedPercent float64 `json:"enclosedPercent"`

	Discount Value `json:"discount"`

	CompanyTariff            Value   `json:"companyTariff"`
	CompanyTariffDiscount    float64 `json:"companyTariffDiscount"`
	CompanyTariffEnclosedFee float64 `json:"companyTariffEnclosedFee"`

	FixedCommission Value `json:"fixedCommission"`

	States   map[string]StateRule `json:"states,omitempty"`
	Routes   []RouteRule          `json:"routes,omitempty"`
	Zips     []ZipRule            `json:"zips,omitempty"`
	Vehicles []VehicleRule        `json:"vehicles,omitempty"`

	ServiceLevels []ServiceLevelRule `json:"serviceLevels,omitempty"`
}
