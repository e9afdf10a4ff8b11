package repair

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/McCollisters/autovista-api-sub002/internal/obs"
)

// DefaultBatchSize bounds how many quotes one batch loads from storage.
const DefaultBatchSize = 50

// Quote pairs a stored quote identifier with its raw pricing document.
type Quote struct {
	ID  string
	Doc map[string]any
}

// Store abstracts the persisted quotes the runner scans and corrects.
type Store interface {
	// ListBatch returns up to limit quotes ordered by id, strictly after
	// afterID. An empty afterID starts from the beginning.
	ListBatch(ctx context.Context, afterID string, limit int) ([]Quote, error)
	// Update persists a corrected document. Existing records are only
	// ever updated, never deleted.
	Update(ctx context.Context, id string, doc map[string]any) error
}

// Report summarises one repair run.
type Report struct {
	Scanned  int
	Repaired int
}

// Runner batch-scans persisted quotes and repairs drifted pricing
// documents. Batches are processed sequentially to bound memory and
// database load; there are no parallel workers.
type Runner struct {
	Store     Store
	BatchSize int
	// Limit stops the run after scanning this many quotes; zero scans
	// everything.
	Limit  int
	DryRun bool
	Logger zerolog.Logger
}

// Run walks every stored quote in id order and writes back the ones whose
// documents needed correction. A second run over an already-repaired
// dataset performs zero writes.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if r.Store == nil {
		return Report{}, fmt.Errorf("repair: store not configured")
	}
	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var report Report
	afterID := ""
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		quotes, err := r.Store.ListBatch(ctx, afterID, batchSize)
		if err != nil {
			return report, fmt.Errorf("repair: list batch after %q: %w", afterID, err)
		}
		if len(quotes) == 0 {
			break
		}
		for _, quote := range quotes {
			report.Scanned++
			obs.RepairScannedTotal.Inc()
			if RepairQuote(quote.Doc) {
				report.Repaired++
				obs.RepairModifiedTotal.Inc()
				r.Logger.Info().Str("quote_id", quote.ID).Bool("dry_run", r.DryRun).Msg("quote pricing repaired")
				if !r.DryRun {
					if err := r.Store.Update(ctx, quote.ID, quote.Doc); err != nil {
						return report, fmt.Errorf("repair: update quote %s: %w", quote.ID, err)
					}
				}
			}
			if r.Limit > 0 && report.Scanned >= r.Limit {
				return report, nil
			}
		}
		if len(quotes) < batchSize {
			break
		}
		afterID = quotes[len(quotes)-1].ID
	}
	return report, nil
}
