package mysql

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo implements the OutboxRepository port over MySQL.
type OutboxRepo struct {
	db *sqlx.DB
}

// NewOutboxRepository builds the persistence adapter for sync intents.
func NewOutboxRepository(db *sqlx.DB) *OutboxRepo {
	return &OutboxRepo{db: db}
}

// Enqueue records a sync intent, immediately due.
func (r *OutboxRepo) Enqueue(productID, op string) error {
	_, err := r.db.Exec(`
		INSERT INTO search_outbox (product_id, op, status, attempts, next_attempt_at, created_at)
		VALUES (?, ?, ?, 0, NOW(), NOW())`,
		productID, op, entity.OutboxStatusPending,
	)
	if err != nil {
		return fmt.Errorf("enqueue outbox: %w", err)
	}
	return nil
}

// Due returns pending entries whose attempt time has passed, oldest first.
func (r *OutboxRepo) Due(now time.Time, limit int) ([]*entity.OutboxEntry, error) {
	var list []*entity.OutboxEntry
	err := r.db.Select(&list, `
		SELECT id, product_id, op, status, attempts, next_attempt_at, last_error, created_at, done_at
		FROM search_outbox
		WHERE status = ? AND next_attempt_at <= ?
		ORDER BY id
		LIMIT ?`,
		entity.OutboxStatusPending, now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list due outbox: %w", err)
	}
	return list, nil
}

// MarkDone completes an entry.
func (r *OutboxRepo) MarkDone(id int64) error {
	_, err := r.db.Exec(
		`UPDATE search_outbox SET status = ?, done_at = NOW() WHERE id = ?`,
		entity.OutboxStatusDone, id,
	)
	if err != nil {
		return fmt.Errorf("mark outbox done: %w", err)
	}
	return nil
}

// Reschedule bumps attempts and defers the entry after a failure.
func (r *OutboxRepo) Reschedule(id int64, attempts int, nextAttempt time.Time, lastError string) error {
	_, err := r.db.Exec(
		`UPDATE search_outbox SET attempts = ?, next_attempt_at = ?, last_error = ? WHERE id = ?`,
		attempts, nextAttempt, lastError, id,
	)
	if err != nil {
		return fmt.Errorf("reschedule outbox: %w", err)
	}
	return nil
}

// MarkFailed parks an entry that exhausted its retries.
func (r *OutboxRepo) MarkFailed(id int64, lastError string) error {
	_, err := r.db.Exec(
		`UPDATE search_outbox SET status = ?, last_error = ? WHERE id = ?`,
		entity.OutboxStatusFailed, lastError, id,
	)
	if err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}

// ResetFailed returns parked entries to pending for the reindex sweep.
func (r *OutboxRepo) ResetFailed() (int64, error) {
	res, err := r.db.Exec(
		`UPDATE search_outbox SET status = ?, attempts = 0, next_attempt_at = NOW() WHERE status = ?`,
		entity.OutboxStatusPending, entity.OutboxStatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("reset failed outbox: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
