package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchProcessor runs per-site pipelines concurrently.
// Sites share no state (each SiteScan owns its search strings, detector
// and accumulator), so the only coordination needed is the concurrency
// limit.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each site, so pipeline
	// state never leaks between scans.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of sites processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent site scans.
// Default is 1 (sequential) if not specified or not positive.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     1,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process runs a pipeline for every scan under the concurrency limit.
// The scans slice keeps its order: each SiteScan is mutated in place, so
// results come back in directory order regardless of completion order.
//
// A pipeline error (a malformed capture, typically) aborts the batch:
// the errgroup cancels the remaining scans and the first error is
// returned. Partial results are not silently conflated with clean runs.
func (bp *BatchProcessor) Process(ctx context.Context, scans []*SiteScan) error {
	bp.logger.Info("starting batch processing",
		"total_sites", len(scans),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for _, scan := range scans {
		scan := scan
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p := bp.pipelineFactory()
			if err := p.Execute(ctx, scan); err != nil {
				bp.logger.Error("site scan failed",
					"site", scan.Site,
					"error", err,
				)
				return err
			}

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_sites", len(scans),
		"elapsed", time.Since(startTime),
	)

	return err
}
