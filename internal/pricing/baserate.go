package pricing

import "github.com/McCollisters/autovista-api-sub002/internal/vehicle"

// RateBand is one mileage band in a rate schedule. A band applies up to
// MaxMiles; the final band of a schedule uses MaxMiles 0 and is open-ended.
// Class narrows the band to one pricing class; empty matches every class.
type RateBand struct {
	MaxMiles float64       `json:"maxMiles"`
	PerMile  float64       `json:"perMile"`
	Minimum  float64       `json:"minimum"`
	Class    vehicle.Class `json:"class,omitempty"`
}

// standardRates is the house mileage-rate schedule applied when a portal
// has no custom rate table enabled. Longer hauls earn a lower per-mile
// rate with a higher absolute floor.
var standardRates = []RateBand{
	{MaxMiles: 500, PerMile: 1.00, Minimum: 300},
	{MaxMiles: 1000, PerMile: 0.85, Minimum: 500},
	{MaxMiles: 1500, PerMile: 0.75, Minimum: 850},
	{MaxMiles: 2500, PerMile: 0.65, Minimum: 1125},
	{MaxMiles: 0, PerMile: 0.60, Minimum: 1625},
}

// StandardRates returns a copy of the house rate schedule.
func StandardRates() []RateBand {
	out := make([]RateBand, len(standardRates))
	copy(out, standardRates)
	return out
}

// BaseRate derives a vehicle's markup-free base price from mileage. When
// customRates is non-empty (a portal with custom rates enabled) it is used
// in place of the standard schedule. Class-specific custom bands take
// precedence over class-agnostic ones. The result excludes every modifier:
// oversize, fuel, enclosed and all other markups layer on top.
func BaseRate(miles float64, class vehicle.Class, customRates []RateBand) float64 {
	rates := customRates
	if len(rates) == 0 {
		rates = standardRates
	}
	band, ok := matchBand(rates, miles, class)
	if !ok {
		band, ok = matchBand(rates, miles, "")
	}
	if !ok {
		return 0
	}
	price := miles * band.PerMile
	if price < band.Minimum {
		price = band.Minimum
	}
	return round2(price)
}

func matchBand(rates []RateBand, miles float64, class vehicle.Class) (RateBand, bool) {
	var open RateBand
	var hasOpen bool
	for _, band := range rates {
		if band.Class != class {
			continue
		}
		if band.MaxMiles <= 0 {
			open = band
			hasOpen = true
			continue
		}
		if miles <= band.MaxMiles {
			return band, true
		}
	}
	return open, hasOpen
}

// StripBundledOversize removes an oversize surcharge that a legacy record
// folded into its stored base, restoring the markup-free invariant. Bases
// never go negative.
func StripBundledOversize(base float64, class vehicle.Class, oversize Oversize) float64 {
	base -= oversize.For(class)
	if base < 0 {
		return 0
	}
	return base
}
