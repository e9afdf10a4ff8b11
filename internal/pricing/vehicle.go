package pricing

import (
	"math"
	"strings"

	"github.com/McCollisters/autovista-api-sub002/internal/vehicle"
)

// VehicleInput describes one vehicle on a quote request.
type VehicleInput struct {
	Make       string
	Model      string
	Year       int
	VIN        string
	Class      vehicle.Class
	Inoperable bool
	Transport  vehicle.TransportType
}

// Shipment is the route context shared by every vehicle on an order.
// Callers validate it before invoking the engine: mileage is non-negative
// and finite, state codes are upper-case two-letter codes.
type Shipment struct {
	Miles            float64
	OriginState      string
	DestinationState string
	OriginZip        string
	DestinationZip   string
}

// PriceVehicle applies the resolved modifier configuration to one vehicle's
// base price and produces the full per-tier breakdown. The computation is a
// pure function of its arguments; absent modifier fields were already
// normalized to zero by Resolve.
func PriceVehicle(v VehicleInput, ship Shipment, base float64, cfg Resolved) VehiclePricing {
	enclosed := v.Transport == vehicle.TransportEnclosed

	m := Modifiers{
		Routes:         routeAmount(cfg, ship, base),
		States:         stateAmount(cfg.States, ship, base),
		Oversize:       cfg.Oversize.For(v.Class),
		Vehicles:       vehicleAmount(cfg.Vehicles, v, base),
		GlobalDiscount: cfg.GlobalDiscount.AmountOf(base),
		PortalDiscount: cfg.PortalDiscount.AmountOf(base),
		IRR:            cfg.IRR.AmountOf(base),
		Fuel:           cfg.Fuel.AmountOf(base),
		ServiceLevel:   cfg.LevelMarkup(LevelOne),
	}
	if v.Inoperable {
		m.Inoperable = cfg.Inoperable.AmountOf(base)
	}
	if enclosed {
		m.EnclosedFlat = cfg.EnclosedFlat
		m.EnclosedPercent = round2(base * cfg.EnclosedPercent / 100)
	}

	// Shared surcharge sum for every tier; each tier layers its own
	// service-level markup on top.
	common := m.Inoperable + m.Routes + m.States + m.Oversize + m.Vehicles +
		m.IRR + m.Fuel - m.GlobalDiscount - m.PortalDiscount

	// Tier one quotes both transport classes regardless of what the
	// vehicle ships under, so its enclosed slot always carries the
	// enclosed surcharges. The flat tiers price the vehicle's own class.
	enclosedExtra := cfg.EnclosedFlat + round2(base*cfg.EnclosedPercent/100)

	openOne := base + common + cfg.LevelMarkup(LevelOne)
	one := SplitTier{
		Open:     buildSlot(openOne, cfg, false),
		Enclosed: buildSlot(openOne+enclosedExtra, cfg, true),
	}

	flatTier := func(level ServiceLevel) Slot {
		total := base + common + cfg.LevelMarkup(level)
		if enclosed {
			total += enclosedExtra
		}
		return buildSlot(total, cfg, enclosed)
	}

	totals := Totals{
		WhiteGlove: whiteGlove(ship.Miles, cfg.WhiteGlove),
		One:        one,
		Three:      flatTier(LevelThree),
		Five:       flatTier(LevelFive),
		Seven:      flatTier(LevelSeven),
	}

	// The breakdown records the tier-one figures for the vehicle's own
	// transport class.
	slot := one.Open
	if enclosed {
		slot = one.Enclosed
	}
	m.Commission = slot.Commission
	m.CompanyTariff = slot.CompanyTariff

	return VehiclePricing{
		Base:      round2(base),
		Modifiers: m,
		Totals:    totals,
	}
}

// buildSlot applies company tariff and commission against a tier's total.
func buildSlot(total float64, cfg Resolved, enclosed bool) Slot {
	tariff := cfg.CompanyTariff.AmountOf(total) - cfg.CompanyTariffDiscount
	if enclosed {
		tariff += cfg.CompanyTariffEnclosedFee
	}
	commission := cfg.FixedCommission.AmountOf(total)
	return Slot{
		Total:                               round2(total),
		CompanyTariff:                       round2(tariff),
		Commission:                          round2(commission),
		TotalWithCompanyTariffAndCommission: round2(total + tariff + commission),
	}
}

// whiteGlove prices the premium service identically for both transport
// classes: the mileage multiplier with a floor minimum, rounded to whole
// dollars.
func whiteGlove(miles float64, wg WhiteGlove) float64 {
	return math.Round(math.Max(miles*wg.Multiplier, wg.Minimum))
}

// routeAmount matches the origin/destination state pair and any pickup or
// delivery ZIP rules. ZIP-level surcharges refine the lane and report
// under the routes line.
func routeAmount(cfg Resolved, ship Shipment, base float64) float64 {
	var amount float64
	for _, rule := range cfg.Routes {
		if strings.EqualFold(rule.Origin, ship.OriginState) &&
			strings.EqualFold(rule.Destination, ship.DestinationState) {
			amount += Value{Value: rule.Value, ValueType: rule.ValueType}.AmountOf(base)
		}
	}
	for _, rule := range cfg.Zips {
		if zipRuleMatches(rule, ship) {
			amount += Value{Value: rule.Value, ValueType: rule.ValueType}.AmountOf(base)
		}
	}
	return round2(amount)
}

func zipRuleMatches(rule ZipRule, ship Shipment) bool {
	switch rule.Direction {
	case DirectionPickup:
		return rule.Zip == ship.OriginZip
	case DirectionDelivery:
		return rule.Zip == ship.DestinationZip
	case DirectionBoth:
		return rule.Zip == ship.OriginZip || rule.Zip == ship.DestinationZip
	default:
		return false
	}
}

// stateAmount matches per-state modifiers by pickup/delivery state and the
// rule's direction.
func stateAmount(states map[string]StateRule, ship Shipment, base float64) float64 {
	var amount float64
	for code, rule := range states {
		pickup := strings.EqualFold(code, ship.OriginState)
		delivery := strings.EqualFold(code, ship.DestinationState)
		applies := false
		switch rule.Direction {
		case DirectionPickup:
			applies = pickup
		case DirectionDelivery:
			applies = delivery
		case DirectionBoth:
			applies = pickup || delivery
		}
		if applies {
			amount += Value{Value: rule.Amount, ValueType: rule.Type}.AmountOf(base)
		}
	}
	return round2(amount)
}

// vehicleAmount applies a make/model-specific override when matched.
func vehicleAmount(rules []VehicleRule, v VehicleInput, base float64) float64 {
	for _, rule := range rules {
		if strings.EqualFold(rule.Make, v.Make) && strings.EqualFold(rule.Model, v.Model) {
			return round2(Value{Value: rule.Value, ValueType: rule.ValueType}.AmountOf(base))
		}
	}
	return 0
}
