package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRequiresGlobal(t *testing.T) {
	_, err := Resolve(nil, nil, Defaults{})
	require.ErrorIs(t, err, ErrMissingGlobalModifiers)
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	global := &ModifierSet{
		IsGlobal:        true,
		Fuel:            Value{Value: 50, ValueType: Flat},
		IRR:             Value{Value: 2, ValueType: Percent},
		Inoperable:      Value{Value: 150, ValueType: Flat},
		EnclosedFlat:    200,
		EnclosedPercent: 5,
		WhiteGlove:      &WhiteGlove{Multiplier: 2, Minimum: 1500},
		FixedCommission: Value{Value: 50, ValueType: Flat},
	}
	portal := &ModifierSet{
		IRR: Value{Value: 3, ValueType: Percent},
		// Zero-valued fields must not shadow the global record.
		Fuel: Value{},
	}

	r, err := Resolve(global, portal, Defaults{})
	require.NoError(t, err)

	require.Equal(t, Value{Value: 50, ValueType: Flat}, r.Fuel)
	require.Equal(t, Value{Value: 3, ValueType: Percent}, r.IRR)
	require.Equal(t, Value{Value: 150, ValueType: Flat}, r.Inoperable)
	require.Equal(t, WhiteGlove{Multiplier: 2, Minimum: 1500}, r.WhiteGlove)
	require.Equal(t, float64(200), r.EnclosedFlat)
}

func TestResolveWhiteGloveAsUnit(t *testing.T) {
	global := &ModifierSet{
		IsGlobal:   true,
		WhiteGlove: &WhiteGlove{Multiplier: 2, Minimum: 1500},
	}
	portal := &ModifierSet{
		WhiteGlove: &WhiteGlove{Multiplier: 2.5, Minimum: 1300},
	}

	r, err := Resolve(global, portal, Defaults{})
	require.NoError(t, err)
	require.Equal(t, WhiteGlove{Multiplier: 2.5, Minimum: 1300}, r.WhiteGlove)

	// Portal without a white glove object keeps the global unit intact.
	r, err = Resolve(global, &ModifierSet{}, Defaults{})
	require.NoError(t, err)
	require.Equal(t, WhiteGlove{Multiplier: 2, Minimum: 1500}, r.WhiteGlove)
}

func TestResolveWhiteGloveMinimumDefault(t *testing.T) {
	global := &ModifierSet{IsGlobal: true, WhiteGlove: &WhiteGlove{Multiplier: 2}}

	r, err := Resolve(global, nil, Defaults{})
	require.NoError(t, err)
	require.Equal(t, float64(DefaultWhiteGloveMinimum), r.WhiteGlove.Minimum)

	r, err = Resolve(global, nil, Defaults{WhiteGloveMinimum: 1500})
	require.NoError(t, err)
	require.Equal(t, float64(1500), r.WhiteGlove.Minimum)
}

func TestResolveDiscountsStaySeparate(t *testing.T) {
	global := &ModifierSet{IsGlobal: true, Discount: Value{Value: 25, ValueType: Flat}}
	portal := &ModifierSet{Discount: Value{Value: 5, ValueType: Percent}}

	r, err := Resolve(global, portal, Defaults{})
	require.NoError(t, err)
	require.Equal(t, Value{Value: 25, ValueType: Flat}, r.GlobalDiscount)
	require.Equal(t, Value{Value: 5, ValueType: Percent}, r.PortalDiscount)

	r, err = Resolve(global, nil, Defaults{})
	require.NoError(t, err)
	require.True(t, r.PortalDiscount.IsZero())
}

func TestResolveServiceLevelsMergePerOption(t *testing.T) {
	global := &ModifierSet{
		IsGlobal: true,
		ServiceLevels: []ServiceLevelRule{
			{ServiceLevelOption: LevelOne, Value: 100},
			{ServiceLevelOption: LevelThree, Value: 50},
			{ServiceLevelOption: LevelFive, Value: 25},
		},
	}
	portal := &ModifierSet{
		ServiceLevels: []ServiceLevelRule{
			{ServiceLevelOption: LevelThree, Value: 75},
			{ServiceLevelOption: LevelSeven, Value: 0},
		},
	}

	r, err := Resolve(global, portal, Defaults{})
	require.NoError(t, err)
	require.Equal(t, float64(100), r.LevelMarkup(LevelOne))
	require.Equal(t, float64(75), r.LevelMarkup(LevelThree))
	require.Equal(t, float64(25), r.LevelMarkup(LevelFive))
	require.Equal(t, float64(0), r.LevelMarkup(LevelSeven))
}

func TestResolveCollectionsOverrideWhenNonEmpty(t *testing.T) {
	global := &ModifierSet{
		IsGlobal: true,
		States:   map[string]StateRule{"NY": {Type: Flat, Direction: DirectionPickup, Amount: 50}},
		Routes:   []RouteRule{{Origin: "NJ", Destination: "FL", Value: 100, ValueType: Flat}},
	}
	portal := &ModifierSet{
		Routes: []RouteRule{{Origin: "NJ", Destination: "TX", Value: 80, ValueType: Flat}},
	}

	r, err := Resolve(global, portal, Defaults{})
	require.NoError(t, err)
	require.Equal(t, global.States, r.States)
	require.Equal(t, portal.Routes, r.Routes)
}
