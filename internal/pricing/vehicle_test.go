package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/McCollisters/autovista-api-sub002/internal/vehicle"
)

func testConfig() Resolved {
	return Resolved{
		Inoperable:               Value{Value: 100, ValueType: Flat},
		Fuel:                     Value{Value: 50, ValueType: Flat},
		IRR:                      Value{Value: 2, ValueType: Percent},
		WhiteGlove:               WhiteGlove{Multiplier: 2, Minimum: 1200},
		Oversize:                 Oversize{SUV: 75, Van: 150, Pickup2Doors: 50, Pickup4Doors: 100},
		EnclosedFlat:             200,
		EnclosedPercent:          5,
		GlobalDiscount:           Value{Value: 25, ValueType: Flat},
		CompanyTariff:            Value{Value: 10, ValueType: Percent},
		CompanyTariffDiscount:    10,
		CompanyTariffEnclosedFee: 25,
		FixedCommission:          Value{Value: 50, ValueType: Flat},
		ServiceLevels: map[ServiceLevel]float64{
			LevelOne:   100,
			LevelThree: 50,
			LevelFive:  25,
			LevelSeven: 0,
		},
	}
}

func TestPriceVehicleOpenSedan(t *testing.T) {
	cfg := testConfig()
	v := VehicleInput{Make: "Honda", Model: "Accord", Class: vehicle.ClassSedan, Transport: vehicle.TransportOpen}
	ship := Shipment{Miles: 500, OriginState: "NJ", DestinationState: "FL"}

	p := PriceVehicle(v, ship, 1000, cfg)

	require.Equal(t, float64(1000), p.Base)
	require.Equal(t, float64(20), p.Modifiers.IRR)
	require.Equal(t, float64(50), p.Modifiers.Fuel)
	require.Equal(t, float64(25), p.Modifiers.GlobalDiscount)
	require.Zero(t, p.Modifiers.Inoperable)
	require.Zero(t, p.Modifiers.Oversize)
	// An open vehicle applies no enclosed modifiers.
	require.Zero(t, p.Modifiers.EnclosedFlat)
	require.Zero(t, p.Modifiers.EnclosedPercent)

	require.Equal(t, Slot{
		Total:                               1145,
		CompanyTariff:                       104.5,
		Commission:                          50,
		TotalWithCompanyTariffAndCommission: 1299.5,
	}, p.Totals.One.Open)

	// Tier one always quotes the enclosed class too.
	require.Equal(t, Slot{
		Total:                               1395,
		CompanyTariff:                       154.5,
		Commission:                          50,
		TotalWithCompanyTariffAndCommission: 1599.5,
	}, p.Totals.One.Enclosed)

	require.Equal(t, float64(1095), p.Totals.Three.Total)
	require.Equal(t, float64(1070), p.Totals.Five.Total)
	require.Equal(t, float64(1045), p.Totals.Seven.Total)

	// 500 miles at 2x floors at the 1200 minimum.
	require.Equal(t, float64(1200), p.Totals.WhiteGlove)

	// Breakdown records the tier-one figures for the vehicle's own class.
	require.Equal(t, float64(50), p.Modifiers.Commission)
	require.Equal(t, float64(104.5), p.Modifiers.CompanyTariff)
}

func TestPriceVehicleEnclosedInoperableSUV(t *testing.T) {
	cfg := testConfig()
	v := VehicleInput{Make: "Toyota", Model: "4Runner", Class: vehicle.ClassSUV, Inoperable: true, Transport: vehicle.TransportEnclosed}
	ship := Shipment{Miles: 800, OriginState: "NJ", DestinationState: "FL"}

	p := PriceVehicle(v, ship, 1000, cfg)

	require.Equal(t, float64(100), p.Modifiers.Inoperable)
	require.Equal(t, float64(75), p.Modifiers.Oversize)
	require.Equal(t, float64(200), p.Modifiers.EnclosedFlat)
	require.Equal(t, float64(50), p.Modifiers.EnclosedPercent)

	require.Equal(t, float64(1320), p.Totals.One.Open.Total)
	require.Equal(t, float64(1570), p.Totals.One.Enclosed.Total)
	// enclosed.total = open.total + enclosedFlat + base*enclosedPercent/100
	require.Equal(t, p.Totals.One.Open.Total+200+1000*5/100, p.Totals.One.Enclosed.Total)

	// Enclosed slot tariff includes the enclosed fee.
	require.Equal(t, float64(172), p.Totals.One.Enclosed.CompanyTariff)
	require.Equal(t, float64(1792), p.Totals.One.Enclosed.TotalWithCompanyTariffAndCommission)

	// Flat tiers price the vehicle's own (enclosed) class.
	require.Equal(t, float64(1470), p.Totals.Seven.Total)
	require.Equal(t, float64(162), p.Totals.Seven.CompanyTariff)

	require.Equal(t, float64(1600), p.Totals.WhiteGlove)

	require.Equal(t, float64(172), p.Modifiers.CompanyTariff)
}

func TestPriceVehicleRouteStateAndVehicleRules(t *testing.T) {
	cfg := testConfig()
	cfg.Routes = []RouteRule{{Origin: "NJ", Destination: "FL", Value: 100, ValueType: Flat}}
	cfg.Zips = []ZipRule{{Zip: "10001", Direction: DirectionPickup, Value: 25, ValueType: Flat}}
	cfg.States = map[string]StateRule{
		"NY": {Type: Flat, Direction: DirectionPickup, Amount: 50},
		"FL": {Type: Percent, Direction: DirectionDelivery, Amount: 5},
	}
	cfg.Vehicles = []VehicleRule{{Make: "Ford", Model: "F-150", Value: 80, ValueType: Flat}}

	v := VehicleInput{Make: "Ford", Model: "F-150", Class: vehicle.ClassPickup4Doors, Transport: vehicle.TransportOpen}
	ship := Shipment{Miles: 500, OriginState: "NJ", DestinationState: "FL", OriginZip: "10001"}

	p := PriceVehicle(v, ship, 1000, cfg)

	require.Equal(t, float64(125), p.Modifiers.Routes) // lane rule + pickup zip
	require.Equal(t, float64(50), p.Modifiers.States)  // FL delivery percent only
	require.Equal(t, float64(80), p.Modifiers.Vehicles)
	require.Equal(t, float64(100), p.Modifiers.Oversize)
}

func TestPriceVehicleStateDirectionBoth(t *testing.T) {
	cfg := Resolved{
		States: map[string]StateRule{
			"CA": {Type: Flat, Direction: DirectionBoth, Amount: 40},
		},
	}
	ship := Shipment{OriginState: "CA", DestinationState: "CA"}
	p := PriceVehicle(VehicleInput{Class: vehicle.ClassSedan, Transport: vehicle.TransportOpen}, ship, 500, cfg)
	// A rule scoped to both directions applies once per matching leg pair.
	require.Equal(t, float64(40), p.Modifiers.States)
}

func TestWhiteGloveFormula(t *testing.T) {
	cases := []struct {
		miles, multiplier, minimum, want float64
	}{
		{1000, 2, 1200, 2000},
		{100, 2, 1200, 1200},
		{625.3, 2.1, 1200, 1313}, // rounded to whole dollars
	}
	for _, tc := range cases {
		got := whiteGlove(tc.miles, WhiteGlove{Multiplier: tc.multiplier, Minimum: tc.minimum})
		if got != tc.want {
			t.Fatalf("whiteGlove(%v, %v, %v) = %v, want %v", tc.miles, tc.multiplier, tc.minimum, got, tc.want)
		}
	}
}

func TestPriceVehicleDeterministic(t *testing.T) {
	cfg := testConfig()
	v := VehicleInput{Make: "Honda", Model: "Accord", Class: vehicle.ClassSedan, Transport: vehicle.TransportOpen}
	ship := Shipment{Miles: 743, OriginState: "TX", DestinationState: "WA"}

	first := PriceVehicle(v, ship, 1234.56, cfg)
	second := PriceVehicle(v, ship, 1234.56, cfg)
	require.Equal(t, first, second)
}

func TestPriceVehiclePercentCommission(t *testing.T) {
	cfg := testConfig()
	cfg.FixedCommission = Value{Value: 10, ValueType: Percent}

	p := PriceVehicle(VehicleInput{Class: vehicle.ClassSedan, Transport: vehicle.TransportOpen}, Shipment{Miles: 500}, 1000, cfg)
	// Percent commissions apply against each tier's total.
	require.Equal(t, round2(p.Totals.One.Open.Total*0.10), p.Totals.One.Open.Commission)
	require.Equal(t, round2(p.Totals.Seven.Total*0.10), p.Totals.Seven.Commission)
}
