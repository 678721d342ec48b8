package repository

import (
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
)

// OutboxRepository stores durable index-sync intents.
type OutboxRepository interface {
	// Enqueue records an intent. Repeated intents for the same product are
	// allowed; the worker handles them idempotently (last write wins in the
	// index anyway).
	Enqueue(productID, op string) error
	// Due returns pending entries whose next_attempt_at has passed, oldest first.
	Due(now time.Time, limit int) ([]*entity.OutboxEntry, error)
	MarkDone(id int64) error
	// Reschedule bumps attempts and sets the next attempt time after a failure.
	Reschedule(id int64, attempts int, nextAttempt time.Time, lastError string) error
	// MarkFailed parks an entry that exhausted its retries.
	MarkFailed(id int64, lastError string) error
	// ResetFailed returns parked entries to pending (used by the reindex sweep).
	ResetFailed() (int64, error)
}
