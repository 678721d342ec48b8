package indexer

import (
	"context"
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

const (
	pollInterval  = 2 * time.Second
	flushInterval = 30 * time.Second
	batchSize     = 50

	maxAttempts = 5
	baseBackoff = 5 * time.Second
	maxBackoff  = 5 * time.Minute
)

// ViewDrainer hands over buffered view counters for persistence.
// The Redis cache implements it.
type ViewDrainer interface {
	DrainViews(ctx context.Context) (map[string]int, error)
}

// Worker drains the outbox into the index and periodically flushes buffered
// view counters back to the catalog. One worker per process is enough; the
// outbox tolerates duplicate processing.
type Worker struct {
	sync     *UseCase
	outbox   repository.OutboxRepository
	products repository.ProductRepository
	views    ViewDrainer // may be nil
	log      *logger.Logger
}

// NewWorker builds the worker. views may be nil.
func NewWorker(
	sync *UseCase,
	outbox repository.OutboxRepository,
	products repository.ProductRepository,
	views ViewDrainer,
	log *logger.Logger,
) *Worker {
	return &Worker{sync: sync, outbox: outbox, products: products, views: views, log: log}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	w.log.Info().Msg("indexer worker started")
	for {
		select {
		case <-ctx.Done():
			w.flushViews(context.Background())
			w.log.Info().Msg("indexer worker stopped")
			return
		case <-poll.C:
			w.drainOutbox(ctx)
		case <-flush.C:
			w.flushViews(ctx)
		}
	}
}

func (w *Worker) drainOutbox(ctx context.Context) {
	entries, err := w.outbox.Due(time.Now(), batchSize)
	if err != nil {
		w.log.Error().Err(err).Msg("load due outbox entries")
		return
	}
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, e.ID, e.ProductID, e.Op, e.Attempts)
	}
}

func (w *Worker) process(ctx context.Context, id int64, productID, op string, attempts int) {
	err := w.sync.SyncProduct(ctx, productID, op)
	if err == nil {
		if err := w.outbox.MarkDone(id); err != nil {
			w.log.Error().Err(err).Int64("entry", id).Msg("mark outbox entry done")
		}
		return
	}

	attempts++
	if attempts >= maxAttempts {
		w.log.Error().Err(err).
			Str("product_id", productID).
			Str("op", op).
			Int("attempts", attempts).
			Msg("index sync parked after repeated failures")
		if err := w.outbox.MarkFailed(id, err.Error()); err != nil {
			w.log.Error().Err(err).Int64("entry", id).Msg("mark outbox entry failed")
		}
		return
	}

	delay := Backoff(attempts)
	w.log.Warn().Err(err).
		Str("product_id", productID).
		Str("op", op).
		Int("attempts", attempts).
		Dur("retry_in", delay).
		Msg("index sync failed, will retry")
	if err := w.outbox.Reschedule(id, attempts, time.Now().Add(delay), err.Error()); err != nil {
		w.log.Error().Err(err).Int64("entry", id).Msg("reschedule outbox entry")
	}
}

// Backoff returns the retry delay after the given number of attempts:
// 5s, 10s, 20s, 40s, ... capped at 5m.
func Backoff(attempts int) time.Duration {
	d := baseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// flushViews persists buffered view counters. Increments that fail to apply
// are dropped; view counts are advisory ranking input, not bookkeeping.
func (w *Worker) flushViews(ctx context.Context) {
	if w.views == nil {
		return
	}
	counts, err := w.views.DrainViews(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("drain view counters")
	}
	for productID, delta := range counts {
		if err := w.products.IncrementViewCount(productID, delta); err != nil {
			w.log.Warn().Err(err).Str("product_id", productID).Int("delta", delta).Msg("apply view count")
		}
	}
}
