package services

import (
	"context"
	"time"

	"realestate-api/utils"
)

// DefaultRefreshInterval is the period between ingestion cycles.
const DefaultRefreshInterval = 600 * time.Second

// Refresher re-runs ingestion on a fixed period until its context is
// cancelled. The first cycle starts immediately. A failed cycle is logged
// once and the next tick runs regardless.
type Refresher struct {
	ingester Ingester
	path     string
	interval time.Duration
	logger   *utils.Logger
}

func NewRefresher(ingester Ingester, path string, interval time.Duration, logger *utils.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{ingester: ingester, path: path, interval: interval, logger: logger}
}

// Run blocks until ctx is done. Cycles never overlap.
func (r *Refresher) Run(ctx context.Context) {
	r.logger.Info("[refresh] Scheduler started: source %q every %v", r.path, r.interval)
	defer r.logger.Info("[refresh] Scheduler stopped")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		r.runCycle(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Refresher) runCycle(ctx context.Context) {
	n, err := r.ingester.Ingest(ctx, r.path)
	if err != nil {
		r.logger.Error("[refresh] Ingestion cycle failed: %v", err)
		return
	}
	r.logger.Debug("[refresh] Ingestion cycle stored %d listings", n)
}
