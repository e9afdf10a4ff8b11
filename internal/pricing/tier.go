package pricing

import "math"

// Slot carries the priced figures for one tier and transport class.
type Slot struct {
	Total                               float64 `json:"total"`
	CompanyTariff                       float64 `json:"companyTariff"`
	Commission                          float64 `json:"commission"`
	TotalWithCompanyTariffAndCommission float64 `json:"totalWithCompanyTariffAndCommission"`
}

func (s Slot) add(other Slot) Slot {
	return Slot{
		Total:                               round2(s.Total + other.Total),
		CompanyTariff:                       round2(s.CompanyTariff + other.CompanyTariff),
		Commission:                          round2(s.Commission + other.Commission),
		TotalWithCompanyTariffAndCommission: round2(s.TotalWithCompanyTariffAndCommission + other.TotalWithCompanyTariffAndCommission),
	}
}

// SplitTier is the expedited tier, priced separately for open and enclosed
// transport. Hauling within one business day always quotes both classes.
type SplitTier struct {
	Open     Slot `json:"open"`
	Enclosed Slot `json:"enclosed"`
}

// Totals holds the per-tier figures for one vehicle or one whole order.
// Tier one is split into open/enclosed; tiers three, five and seven carry
// their slot fields directly. The two shapes are distinct types so the
// historical mixed shape is unrepresentable here.
type Totals struct {
	WhiteGlove float64   `json:"whiteGlove"`
	One        SplitTier `json:"one"`
	Three      Slot      `json:"three"`
	Five       Slot      `json:"five"`
	Seven      Slot      `json:"seven"`
}

// Modifiers is the per-vehicle surcharge/discount breakdown. Every field
// is a resolved dollar amount; discounts are recorded positive and
// subtracted when totals assemble.
type Modifiers struct {
	Inoperable      float64 `json:"inoperable"`
	Routes          float64 `json:"routes"`
	States          float64 `json:"states"`
	Oversize        float64 `json:"oversize"`
	Vehicles        float64 `json:"vehicles"`
	GlobalDiscount  float64 `json:"globalDiscount"`
	PortalDiscount  float64 `json:"portalDiscount"`
	IRR             float64 `json:"irr"`
	Fuel            float64 `json:"fuel"`
	EnclosedFlat    float64 `json:"enclosedFlat"`
	EnclosedPercent float64 `json:"enclosedPercent"`
	Commission      float64 `json:"commission"`
	ServiceLevel    float64 `json:"serviceLevel"`
	CompanyTariff   float64 `json:"companyTariff"`
}

// VehiclePricing is the engine's output for a single vehicle. Base excludes
// every modifier.
type VehiclePricing struct {
	Base      float64   `json:"base"`
	Modifiers Modifiers `json:"modifiers"`
	Totals    Totals    `json:"totals"`
}

// TotalModifiers mirrors Modifiers at the order level. Scalar fields are
// sums across vehicles; service level and company tariff amounts are kept
// as per-vehicle lists so each vehicle's applied value stays auditable.
type TotalModifiers struct {
	Inoperable      float64 `json:"inoperable"`
	Routes          float64 `json:"routes"`
	States          float64 `json:"states"`
	Oversize        float64 `json:"oversize"`
	Vehicles        float64 `json:"vehicles"`
	GlobalDiscount  float64 `json:"globalDiscount"`
	PortalDiscount  float64 `json:"portalDiscount"`
	IRR             float64 `json:"irr"`
	Fuel            float64 `json:"fuel"`
	EnclosedFlat    float64 `json:"enclosedFlat"`
	EnclosedPercent float64 `json:"enclosedPercent"`
	Commission      float64 `json:"commission"`

	ServiceLevels  []float64 `json:"serviceLevels"`
	CompanyTariffs []float64 `json:"companyTariffs"`
}

// TotalPricing aggregates every vehicle on an order into one totals object
// of the same shape as VehiclePricing.
type TotalPricing struct {
	Base      float64        `json:"base"`
	Modifiers TotalModifiers `json:"modifiers"`
	Totals    Totals         `json:"totals"`
}

// NewTotalPricing returns an all-zero total with the full expected shape.
// Modifier lists are non-nil so empty orders serialize as [] rather than
// null.
func NewTotalPricing() TotalPricing {
	return TotalPricing{
		Modifiers: TotalModifiers{
			ServiceLevels:  []float64{},
			CompanyTariffs: []float64{},
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
