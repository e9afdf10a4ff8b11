package pricing

// Aggregate sums vehicle-level pricing into one order-level totals object
// of identical shape. Nil entries (vehicles whose pricing was never
// computed) contribute zero rather than failing; an empty input yields an
// all-zero, fully shaped total. Service level and company tariff modifier
// amounts are concatenated per vehicle instead of summed.
func Aggregate(vehicles []*VehiclePricing) TotalPricing {
	out := NewTotalPricing()
	for _, vp := range vehicles {
		if vp == nil {
			continue
		}
		out.Base = round2(out.Base + vp.Base)

		m := &out.Modifiers
		m.Inoperable = round2(m.Inoperable + vp.Modifiers.Inoperable)
		m.Routes = round2(m.Routes + vp.Modifiers.Routes)
		m.States = round2(m.States + vp.Modifiers.States)
		m.Oversize = round2(m.Oversize + vp.Modifiers.Oversize)
		m.Vehicles = round2(m.Vehicles + vp.Modifiers.Vehicles)
		m.GlobalDiscount = round2(m.GlobalDiscount + vp.Modifiers.GlobalDiscount)
		m.PortalDiscount = round2(m.PortalDiscount + vp.Modifiers.PortalDiscount)
		m.IRR = round2(m.IRR + vp.Modifiers.IRR)
		m.Fuel = round2(m.Fuel + vp.Modifiers.Fuel)
		m.EnclosedFlat = round2(m.EnclosedFlat + vp.Modifiers.EnclosedFlat)
		m.EnclosedPercent = round2(m.EnclosedPercent + vp.Modifiers.EnclosedPercent)
		m.Commission = round2(m.Commission + vp.Modifiers.Commission)
		m.ServiceLevels = append(m.ServiceLevels, vp.Modifiers.ServiceLevel)
		m.CompanyTariffs = append(m.CompanyTariffs, vp.Modifiers.CompanyTariff)

		out.Totals.WhiteGlove = round2(out.Totals.WhiteGlove + vp.Totals.WhiteGlove)
		out.Totals.One.Open = out.Totals.One.Open.add(vp.Totals.One.Open)
		out.Totals.One.Enclosed = out.Totals.One.Enclosed.add(vp.Totals.One.Enclosed)
		out.Totals.Three = out.Totals.Three.add(vp.Totals.Three)
		out.Totals.Five = out.Totals.Five.add(vp.Totals.Five)
		out.Totals.Seven = out.Totals.Seven.add(vp.Totals.Seven)
	}
	return out
}
