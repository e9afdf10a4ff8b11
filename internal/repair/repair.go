// Package repair recomputes drifted quote pricing documents. Historical
// quote records defaulted absent modifier fields to zero at write time and
// occasionally persisted tier totals at the wrong nesting level; this
// package re-derives correct values from the original per-vehicle source
// records and normalizes the structural shape, without ever deleting a
// record.
package repair

import "math"

var slotKeys = []string{"total", "companyTariff", "commission", "totalWithCompanyTariffAndCommission"}

var flatTiers = []string{"three", "five", "seven"}

// RepairQuote repairs one persisted quote document in place and reports
// whether anything changed. The document layout mirrors the stored JSON:
// {"totalPricing": {...}, "vehicles": [{"pricing": {...}}, ...],
// "calculatedQuotes": [{...}, ...]} where calculatedQuotes holds the
// original per-vehicle pricing source records. Running twice over the same
// document is a no-op on the second pass.
func RepairQuote(doc map[string]any) bool {
	if doc == nil {
		return false
	}
	changed := false

	totalPricing, _ := doc["totalPricing"].(map[string]any)
	vehicles, _ := doc["vehicles"].([]any)
	sources, _ := doc["calculatedQuotes"].([]any)

	if normalizePricing(totalPricing) {
		changed = true
	}
	for _, v := range vehicles {
		if normalizePricing(vehiclePricing(v)) {
			changed = true
		}
	}

	// Re-derive flat tier totals from source records when the order-level
	// total is non-zero but a vehicle-level equivalent dropped to zero.
	refilled := false
	for _, tier := range flatTiers {
		orderSlot := tierMap(totalPricing, tier)
		if number(orderSlot, "total") == 0 {
			continue
		}
		for i, v := range vehicles {
			pricing := vehiclePricing(v)
			slot := tierMap(pricing, tier)
			if slot == nil || number(slot, "total") != 0 {
				continue
			}
			src := sourceSlot(sources, i, vehicleVIN(v), tier)
			if src == nil || number(src, "total") == 0 {
				// Nothing usable in the source record; leave the stored
				// zero alone so reruns stay write-free.
				continue
			}
			for _, key := range slotKeys {
				if value, ok := src[key]; ok {
					slot[key] = value
				}
			}
			refilled = true
		}
	}

	if refilled {
		changed = true
		for _, tier := range flatTiers {
			resumTier(totalPricing, vehicles, tier)
		}
	}

	return changed
}

// normalizePricing strips slot keys found at the wrong nesting level: tier
// one carries its figures only under open/enclosed, the flat tiers carry
// them directly. Before a nested map is dropped from a flat tier, its
// figures are lifted when the direct ones are missing or zero.
func normalizePricing(pricing map[string]any) bool {
	totals, _ := pricing["totals"].(map[string]any)
	if totals == nil {
		return false
	}
	changed := false

	if one, ok := totals["one"].(map[string]any); ok {
		for _, key := range slotKeys {
			if _, found := one[key]; found {
				delete(one, key)
				changed = true
			}
		}
	}

	for _, tier := range flatTiers {
		slot, ok := totals[tier].(map[string]any)
		if !ok {
			continue
		}
		for _, class := range []string{"open", "enclosed"} {
			nested, found := slot[class].(map[string]any)
			if !found {
				if _, present := slot[class]; present {
					delete(slot, class)
					changed = true
				}
				continue
			}
			if class == "open" && number(slot, "total") == 0 {
				for _, key := range slotKeys {
					if value, ok := nested[key]; ok {
						slot[key] = value
					}
				}
			}
			delete(slot, class)
			changed = true
		}
	}

	return changed
}

// resumTier recomputes an order-level flat tier slot as the sum of its
// vehicle slots.
func resumTier(totalPricing map[string]any, vehicles []any, tier string) {
	orderSlot := tierMap(totalPricing, tier)
	if orderSlot == nil {
		return
	}
	sums := make(map[string]float64, len(slotKeys))
	for _, v := range vehicles {
		slot := tierMap(vehiclePricing(v), tier)
		for _, key := range slotKeys {
			sums[key] += number(slot, key)
		}
	}
	for _, key := range slotKeys {
		orderSlot[key] = round2(sums[key])
	}
}

// sourceSlot locates the matching source record for a vehicle, preferring
// a VIN match and falling back to positional order.
func sourceSlot(sources []any, index int, vin string, tier string) map[string]any {
	if vin != "" {
		for _, s := range sources {
			record, _ := s.(map[string]any)
			if record == nil {
				continue
			}
			if recordVIN, _ := record["vin"].(string); recordVIN == vin {
				return normalizedSourceTier(record, tier)
			}
		}
	}
	if index >= 0 && index < len(sources) {
		if record, ok := sources[index].(map[string]any); ok {
			return normalizedSourceTier(record, tier)
		}
	}
	return nil
}

// normalizedSourceTier reads a tier slot from a source record, tolerating
// the legacy nested shape without mutating the source.
func normalizedSourceTier(record map[string]any, tier string) map[string]any {
	slot := tierMap(record, tier)
	if slot == nil {
		return nil
	}
	if number(slot, "total") != 0 {
		return slot
	}
	if nested, ok := slot["open"].(map[string]any); ok && number(nested, "total") != 0 {
		return nested
	}
	return slot
}

func vehiclePricing(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return nil
	}
	pricing, _ := m["pricing"].(map[string]any)
	return pricing
}

func vehicleVIN(v any) string {
	m, _ := v.(map[string]any)
	if m == nil {
		return ""
	}
	vin, _ := m["vin"].(string)
	return vin
}

func tierMap(pricing map[string]any, tier string) map[string]any {
	totals, _ := pricing["totals"].(map[string]any)
	if totals == nil {
		return nil
	}
	slot, _ := totals[tier].(map[string]any)
	return slot
}

func number(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
