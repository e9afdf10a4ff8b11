package repair_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/McCollisters/autovista-api-sub002/internal/repair"
)

func slot(total float64) map[string]any {
	return map[string]any{
		"total":                               total,
		"companyTariff":                       total * 0.1,
		"commission":                          50.0,
		"totalWithCompanyTariffAndCommission": total + total*0.1 + 50,
	}
}

// driftedQuote models the historically observed breakage: the order-level
// tier totals are populated while a vehicle-level slot dropped to zero,
// and tier one carries leftover flat keys.
func driftedQuote() map[string]any {
	return map[string]any{
		"totalPricing": map[string]any{
			"totals": map[string]any{
				"one": map[string]any{
					"open":     slot(1100),
					"enclosed": slot(1350),
					"total":    1100.0, // wrong level, must go
				},
				"three": slot(1050),
				"five":  slot(1025),
				"seven": slot(1000),
			},
		},
		"vehicles": []any{
			map[string]any{
				"vin": "1HGCM82633A004352",
				"pricing": map[string]any{
					"totals": map[string]any{
						"one":   map[string]any{"open": slot(1100), "enclosed": slot(1350)},
						"three": slot(0),
						"five":  slot(1025),
						"seven": map[string]any{
							// Legacy nested shape on a flat tier.
							"open": slot(1000),
						},
					},
				},
			},
		},
		"calculatedQuotes": []any{
			map[string]any{
				"vin": "1HGCM82633A004352",
				"totals": map[string]any{
					"three": slot(1050),
					"five":  slot(1025),
					"seven": slot(1000),
				},
			},
		},
	}
}

func TestRepairQuoteRefillsZeroedTiers(t *testing.T) {
	doc := driftedQuote()
	require.True(t, repair.RepairQuote(doc))

	vehicles := doc["vehicles"].([]any)
	pricing := vehicles[0].(map[string]any)["pricing"].(map[string]any)
	totals := pricing["totals"].(map[string]any)

	three := totals["three"].(map[string]any)
	require.Equal(t, 1050.0, three["total"])
	require.Equal(t, 105.0, three["companyTariff"])

	// The nested shape on seven was lifted and stripped.
	seven := totals["seven"].(map[string]any)
	require.Equal(t, 1000.0, seven["total"])
	_, hasNested := seven["open"]
	require.False(t, hasNested)

	// Flat keys under tier one were stripped.
	orderTotals := doc["totalPricing"].(map[string]any)["totals"].(map[string]any)
	one := orderTotals["one"].(map[string]any)
	_, hasFlat := one["total"]
	require.False(t, hasFlat)

	// Order-level flat tiers were re-summed from the repaired vehicles.
	require.Equal(t, 1050.0, orderTotals["three"].(map[string]any)["total"])
}

func TestRepairQuoteIdempotent(t *testing.T) {
	doc := driftedQuote()
	require.True(t, repair.RepairQuote(doc))
	require.False(t, repair.RepairQuote(doc))
}

func TestRepairQuoteLeavesHealthyDocsAlone(t *testing.T) {
	doc := map[string]any{
		"totalPricing": map[string]any{
			"totals": map[string]any{
				"one":   map[string]any{"open": slot(1100), "enclosed": slot(1350)},
				"three": slot(1050),
				"five":  slot(1025),
				"seven": slot(1000),
			},
		},
		"vehicles": []any{
			map[string]any{
				"vin": "VIN1",
				"pricing": map[string]any{
					"totals": map[string]any{
						"one":   map[string]any{"open": slot(1100), "enclosed": slot(1350)},
						"three": slot(1050),
						"five":  slot(1025),
						"seven": slot(1000),
					},
				},
			},
		},
	}
	require.False(t, repair.RepairQuote(doc))
}

func TestRepairQuoteSkipsUnusableSources(t *testing.T) {
	doc := driftedQuote()
	// Zeroed source record: nothing usable to re-derive from.
	doc["calculatedQuotes"] = []any{
		map[string]any{
			"vin":    "1HGCM82633A004352",
			"totals": map[string]any{"three": slot(0), "five": slot(0), "seven": slot(0)},
		},
	}

	// First pass still normalizes shape, second pass must be a no-op even
	// though the zeroed tier could not be refilled.
	require.True(t, repair.RepairQuote(doc))
	require.False(t, repair.RepairQuote(doc))
}

type memoryStore struct {
	quotes  []repair.Quote
	updates int
}

func (s *memoryStore) ListBatch(_ context.Context, afterID string, limit int) ([]repair.Quote, error) {
	var out []repair.Quote
	for _, q := range s.quotes {
		if afterID != "" && q.ID <= afterID {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memoryStore) Update(_ context.Context, id string, doc map[string]any) error {
	s.updates++
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			s.quotes[i].Doc = doc
			return nil
		}
	}
	return fmt.Errorf("quote %s not found", id)
}

func TestRunnerRepairsInBatches(t *testing.T) {
	store := &memoryStore{}
	for i := 0; i < 7; i++ {
		store.quotes = append(store.quotes, repair.Quote{
			ID:  fmt.Sprintf("q-%02d", i),
			Doc: driftedQuote(),
		})
	}

	runner := &repair.Runner{Store: store, BatchSize: 3, Logger: zerolog.Nop()}
	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, report.Scanned)
	require.Equal(t, 7, report.Repaired)
	require.Equal(t, 7, store.updates)

	// Second run over the repaired dataset performs zero writes.
	report, err = runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, report.Scanned)
	require.Zero(t, report.Repaired)
	require.Equal(t, 7, store.updates)
}

func TestRunnerDryRunWritesNothing(t *testing.T) {
	store := &memoryStore{quotes: []repair.Quote{{ID: "q-01", Doc: driftedQuote()}}}

	runner := &repair.Runner{Store: store, DryRun: true, Logger: zerolog.Nop()}
	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Repaired)
	require.Zero(t, store.updates)
}
