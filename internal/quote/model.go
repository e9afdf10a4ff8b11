// Package quote creates and serves vehicle-transport quotes: it resolves
// the portal's modifier configuration, runs the pricing engine per vehicle,
// aggregates the order totals and persists the resulting document. All
// pricing logic lives in the pricing package; this one only orchestrates.
package quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
	"github.com/McCollisters/autovista-api-sub002/internal/vehicle"
)

// Status is the quote lifecycle state.
type Status string

const (
	StatusPending Status = "pending"
	StatusQuoted  Status = "quoted"
	StatusBooked  Status = "booked"
	StatusExpired Status = "expired"
)

// Location is one end of the transport route.
type Location struct {
	City  string `json:"city,omitempty"`
	State string `json:"state"`
	Zip   string `json:"zip,omitempty"`
}

// Vehicle is one vehicle on a quote with its computed pricing attached.
type Vehicle struct {
	Make       string                  `json:"make"`
	Model      string                  `json:"model"`
	Year       int                     `json:"year,omitempty"`
	VIN        string                  `json:"vin,omitempty"`
	Class      vehicle.Class           `json:"pricingClass"`
	Inoperable bool                    `json:"isInoperable"`
	Transport  vehicle.TransportType   `json:"transportType"`
	Pricing    *pricing.VehiclePricing `json:"pricing,omitempty"`
}

// CalculatedQuote is the immutable per-vehicle source record captured at
// computation time. The consistency repair re-derives drifted vehicle
// totals from these, so they are written once and never edited.
type CalculatedQuote struct {
	VIN string `json:"vin,omitempty"`
	pricing.VehiclePricing
}

// Quote is the persisted order-level document.
type Quote struct {
	ID               uuid.UUID            `json:"id"`
	PortalID         uuid.UUID            `json:"portalId"`
	Status           Status               `json:"status"`
	Origin           Location             `json:"origin"`
	Destination      Location             `json:"destination"`
	Miles            float64              `json:"miles"`
	Vehicles         []Vehicle            `json:"vehicles"`
	CalculatedQuotes []CalculatedQuote    `json:"calculatedQuotes,omitempty"`
	TotalPricing     pricing.TotalPricing `json:"totalPricing"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}
