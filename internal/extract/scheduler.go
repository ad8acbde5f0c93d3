package extract

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/willimj3/bella-document-review/internal/config"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/internal/resilience"
)

// ProgressFunc receives the settled-cell count after every cell resolves.
// Calls are serialized and arrive in increment order, so counts are monotonic
// from the consumer's point of view. Keep the callback cheap: it blocks the
// settling worker.
type ProgressFunc func(current, total int)

// ResultFunc receives each cell result as it is produced, including the
// pending placeholder written before the request is issued.
type ResultFunc func(documentID, columnID string, result model.ExtractionResult)

// cell is one unit of work in a bulk run.
type cell struct {
	doc model.Document
	col model.Column
}

// Scheduler drives a bulk run: it diffs the requested grid against existing
// results, then sweeps the remaining cells with a capped worker pool. One
// failing cell never blocks or cancels its siblings.
type Scheduler struct {
	protocol         *Protocol
	concurrency      int
	interval         time.Duration
	transientRetries int
}

// NewScheduler creates a bulk extraction scheduler.
func NewScheduler(p *Protocol, cfg config.ExtractConfig) *Scheduler {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scheduler{
		protocol:         p,
		concurrency:      concurrency,
		interval:         cfg.RequestInterval(),
		transientRetries: cfg.TransientRetries,
	}
}

// Run resolves every cell of documents × columns that is not already Ready.
// Pending and errored cells are re-processed, which makes re-running a failed
// or interrupted bulk run idempotent: completed, reviewed, and manually
// edited cells are never overwritten.
//
// Cancelling ctx stops workers at their next claim; in-flight cells are
// abandoned without a terminal write so a later run picks them up again.
func (s *Scheduler) Run(
	ctx context.Context,
	documents []model.Document,
	columns []model.Column,
	existing map[model.CellKey]model.ExtractionResult,
	onProgress ProgressFunc,
	onResult ResultFunc,
) error {
	work := buildWorkList(documents, columns, existing)
	total := len(work)
	if total == 0 {
		zap.L().Info("bulk run: nothing to extract")
		return nil
	}

	zap.L().Info("bulk run starting",
		zap.Int("documents", len(documents)),
		zap.Int("columns", len(columns)),
		zap.Int("cells", total),
		zap.Int("workers", s.concurrency),
	)
	start := time.Now()

	// The queue is the single synchronization point of the pipeline: workers
	// claim disjoint cells here, so store writes never collide on a key.
	var queueMu sync.Mutex
	next := func() (cell, bool) {
		queueMu.Lock()
		defer queueMu.Unlock()
		if len(work) == 0 {
			return cell{}, false
		}
		c := work[0]
		work = work[1:]
		return c, true
	}

	// The callback runs under the lock so deliveries reach the consumer in
	// increment order; onProgress must stay cheap.
	var progressMu sync.Mutex
	var current, failed int
	settle := func() {
		progressMu.Lock()
		defer progressMu.Unlock()
		current++
		if onProgress != nil {
			onProgress(current, total)
		}
	}

	// Smooths the request rate across all workers; a crude substitute for
	// real backend rate limiting.
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)

	g, gctx := errgroup.WithContext(ctx)
	for range s.concurrency {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, ok := next()
				if !ok {
					return nil
				}

				if err := limiter.Wait(gctx); err != nil {
					return err
				}

				if onResult != nil {
					onResult(c.doc.ID, c.col.ID, model.PendingResult())
				}

				res, err := s.extractWithRetry(gctx, c)
				if err != nil {
					if gctx.Err() != nil {
						// Cancelled mid-flight: leave the pending marker so a
						// re-run re-claims this cell.
						return gctx.Err()
					}
					zap.L().Warn("cell extraction failed",
						zap.String("document", c.doc.Name),
						zap.String("column", c.col.Name),
						zap.Error(err),
					)
					progressMu.Lock()
					failed++
					progressMu.Unlock()
					res = model.ErrorResult(err.Error())
				}

				if onResult != nil {
					onResult(c.doc.ID, c.col.ID, res)
				}
				settle()
			}
		})
	}

	err := g.Wait()

	zap.L().Info("bulk run complete",
		zap.Int("cells", total),
		zap.Int("settled", current),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return err
}

// extractWithRetry wraps the protocol with the scheduler's outer retry
// budget: transient transport and parse failures get a linear re-try delay
// (1s, then 2s). Rate limiting was already retried inside the protocol and is
// not retried again; unauthorized and validation errors are terminal.
func (s *Scheduler) extractWithRetry(ctx context.Context, c cell) (model.ExtractionResult, error) {
	retryCfg := resilience.RetryConfig{
		MaxAttempts:    s.transientRetries + 1,
		InitialBackoff: time.Second,
		Multiplier:     2.0,
		ShouldRetry:    shouldRetryCell,
		OnRetry:        resilience.RetryLogger("scheduler", "extract-cell"),
	}

	return resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (model.ExtractionResult, error) {
		return s.protocol.ExtractCell(ctx, c.doc.Content, c.col)
	})
}

// shouldRetryCell is the outer-layer retry predicate: malformed responses and
// anything the client classified as transient (5xx, transport failures) are
// worth another attempt. Unauthorized, validation, and non-transient API
// errors are terminal, and the protocol has already spent the rate-limit
// budget, so a surviving RateLimitedError is terminal here too.
func shouldRetryCell(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}
	return resilience.IsTransient(err)
}

// buildWorkList computes the minimal cell set needing work: the cartesian
// product of documents × columns minus every cell whose existing result is
// already a real answer.
func buildWorkList(documents []model.Document, columns []model.Column, existing map[model.CellKey]model.ExtractionResult) []cell {
	var work []cell
	for _, doc := range documents {
		for _, col := range columns {
			if res, ok := existing[model.CellKey{DocumentID: doc.ID, ColumnID: col.ID}]; ok && res.Status == model.StatusReady {
				continue
			}
			work = append(work, cell{doc: doc, col: col})
		}
	}
	return work
}
