// Command repair_pricing walks the stored quotes and corrects pricing
// documents that drifted under older writers: nested flat-tier shapes,
// zeroed vehicle totals and stray slot keys under the split tier. It is
// safe to run repeatedly; a clean dataset yields zero writes.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McCollisters/autovista-api-sub002/internal/config"
	"github.com/McCollisters/autovista-api-sub002/internal/obs"
	"github.com/McCollisters/autovista-api-sub002/internal/quote"
	"github.com/McCollisters/autovista-api-sub002/internal/repair"
)

func main() {
	var (
		dryRun    = flag.Bool("dry-run", false, "report what would change without writing")
		batchSize = flag.Int("batch-size", repair.DefaultBatchSize, "quotes loaded per batch")
		limit     = flag.Int("limit", 0, "stop after scanning this many quotes; 0 scans everything")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	baseCtx := context.Background()
	connectCtx, cancel := context.WithTimeout(baseCtx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(connectCtx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	logger := obs.NewLogger("console", "info").With().Str("component", "repair_pricing").Logger()

	runner := &repair.Runner{
		Store:     quote.NewRepairStore(pool),
		BatchSize: *batchSize,
		Limit:     *limit,
		DryRun:    *dryRun,
		Logger:    logger,
	}

	report, err := runner.Run(baseCtx)
	if err != nil {
		log.Fatalf("repair run failed after %d quotes: %v", report.Scanned, err)
	}

	if *dryRun {
		log.Printf("dry run: scanned %d quotes, %d would be repaired", report.Scanned, report.Repaired)
		return
	}
	log.Printf("scanned %d quotes, repaired %d", report.Scanned, report.Repaired)
}
