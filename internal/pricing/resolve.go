package pricing

import "errors"

// ErrMissingGlobalModifiers indicates the single global modifier set could
// not be found. Exactly one must exist system-wide; its absence is a fatal
// configuration error, not a computable state.
var ErrMissingGlobalModifiers = errors.New("pricing: global modifier set is missing")

// DefaultWhiteGloveMinimum is the configured floor for white glove pricing
// when neither the global nor the portal modifier set carries one. Legacy
// records show both 1200 and 1500 in use; 1200 stays the default until
// product settles which floor is authoritative.
const DefaultWhiteGloveMinimum = 1200

// Defaults carries engine-level fallbacks applied when neither modifier
// record specifies a value.
type Defaults struct {
	WhiteGloveMinimum float64
}

// Resolved is the merged, immutable modifier configuration the calculators
// consume. All defaulting happens here, once, at the boundary where
// external data enters the engine; downstream code never re-checks for
// absent fields.
type Resolved struct {
	Inoperable Value
	Fuel       Value
	IRR        Value
	WhiteGlove WhiteGlove
	Oversize   Oversize

	EnclosedFlat    float64
	EnclosedPercent float64

	// The global and portal discounts stay separate line items in the
	// breakdown rather than one overriding the other.
	GlobalDiscount Value
	PortalDiscount Value

	CompanyTariff            Value
	CompanyTariffDiscount    float64
	CompanyTariffEnclosedFee float64

	FixedCommission Value

	States   map[string]StateRule
	Routes   []RouteRule
	Zips     []ZipRule
	Vehicles []VehicleRule

	ServiceLevels map[ServiceLevel]float64
}

// Resolve merges the global modifier set with an optional portal override
// into one resolved configuration. A portal field supersedes the global
// field only when it is meaningfully non-zero/non-empty; absent or zero
// fields fall back to the global record. WhiteGlove resolves as a unit.
func Resolve(global, portal *ModifierSet, defaults Defaults) (Resolved, error) {
	if global == nil {
		return Resolved{}, ErrMissingGlobalModifiers
	}

	r := Resolved{
		Inoperable:               global.Inoperable,
		Fuel:                     global.Fuel,
		IRR:                      global.IRR,
		Oversize:                 global.Oversize,
		EnclosedFlat:             global.EnclosedFlat,
		EnclosedPercent:          global.EnclosedPercent,
		GlobalDiscount:           global.Discount,
		CompanyTariff:            global.CompanyTariff,
		CompanyTariffDiscount:    global.CompanyTariffDiscount,
		CompanyTariffEnclosedFee: global.CompanyTariffEnclosedFee,
		FixedCommission:          global.FixedCommission,
		States:                   global.States,
		Routes:                   global.Routes,
		Zips:                     global.Zips,
		Vehicles:                 global.Vehicles,
	}

	wg := global.WhiteGlove

	if portal != nil {
		if !portal.Inoperable.IsZero() {
			r.Inoperable = portal.Inoperable
		}
		if !portal.Fuel.IsZero() {
			r.Fuel = portal.Fuel
		}
		if !portal.IRR.IsZero() {
			r.IRR = portal.IRR
		}
		if portal.WhiteGlove != nil {
			wg = portal.WhiteGlove
		}
		if !portal.Oversize.IsZero() {
			r.Oversize = portal.Oversize
		}
		if portal.EnclosedFlat != 0 {
			r.EnclosedFlat = portal.EnclosedFlat
		}
		if portal.EnclosedPercent != 0 {
			r.EnclosedPercent = portal.EnclosedPercent
		}
		r.PortalDiscount = portal.Discount
		if !portal.CompanyTariff.IsZero() {
			r.CompanyTariff = portal.CompanyTariff
		}
		if portal.CompanyTariffDiscount != 0 {
			r.CompanyTariffDiscount = portal.CompanyTariffDiscount
		}
		if portal.CompanyTariffEnclosedFee != 0 {
			r.CompanyTariffEnclosedFee = portal.CompanyTariffEnclosedFee
		}
		if !portal.FixedCommission.IsZero() {
			r.FixedCommission = portal.FixedCommission
		}
		if len(portal.States) > 0 {
			r.States = portal.States
		}
		if len(portal.Routes) > 0 {
			r.Routes = portal.Routes
		}
		if len(portal.Zips) > 0 {
			r.Zips = portal.Zips
		}
		if len(portal.Vehicles) > 0 {
			r.Vehicles = portal.Vehicles
		}
	}

	if wg != nil {
		r.WhiteGlove = *wg
	}
	if r.WhiteGlove.Minimum == 0 {
		minimum := defaults.WhiteGloveMinimum
		if minimum == 0 {
			minimum = DefaultWhiteGloveMinimum
		}
		r.WhiteGlove.Minimum = minimum
	}

	r.ServiceLevels = resolveServiceLevels(global, portal)

	return r, nil
}

func resolveServiceLevels(global, portal *ModifierSet) map[ServiceLevel]float64 {
	levels := make(map[ServiceLevel]float64, 4)
	for _, rule := range global.ServiceLevels {
		levels[rule.ServiceLevelOption] = rule.Value
	}
	if portal != nil {
		for _, rule := range portal.ServiceLevels {
			if rule.Value != 0 {
				levels[rule.ServiceLevelOption] = rule.Value
			}
		}
	}
	return levels
}

// LevelMarkup returns the markup for a tier, zero when unset.
func (r Resolved) LevelMarkup(level ServiceLevel) float64 {
	return r.ServiceLevels[level]
}
