package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Domain collectors are created eagerly so instrumented code never sees a
// nil collector; MustRegisterDomainMetrics only hooks them to a registry.
var (
	domainOnce sync.Once

	// QuotesComputedTotal counts quote computations by portal and outcome.
	QuotesComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_computed_total",
		Help: "Count of quote pricing computations by outcome.",
	}, []string{"portal", "result"})

	// QuoteComputeDuration records end-to-end quote computation latency.
	QuoteComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_compute_duration_ms",
		Help:    "Latency of full quote computations in milliseconds.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	// QuoteVehicleCount observes how many vehicles each quote carries.
	QuoteVehicleCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_vehicle_count",
		Help:    "Number of vehicles per computed quote.",
		Buckets: []float64{1, 2, 3, 4, 5, 8, 10},
	})

	// RepairScannedTotal counts quotes scanned by the pricing repair runs.
	RepairScannedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_repair_scanned_total",
		Help: "Quotes scanned by the pricing consistency repair.",
	})

	// RepairModifiedTotal counts quotes corrected by the pricing repair runs.
	RepairModifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_repair_modified_total",
		Help: "Quotes corrected by the pricing consistency repair.",
	})
)

// MustRegisterDomainMetrics registers the domain collectors with the given
// registry (the default registerer when nil). Safe to call more than once.
func MustRegisterDomainMetrics(reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		mustRegister(reg, QuotesComputedTotal, QuoteComputeDuration, QuoteVehicleCount, RepairScannedTotal, RepairModifiedTotal)
	})
}
