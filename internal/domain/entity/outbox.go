package entity

import "time"

// Outbox operations.
const (
	OutboxOpIndex  = "index"  // (re)index the product document
	OutboxOpDelete = "delete" // remove the product from the index
)

// Outbox row states.
const (
	OutboxStatusPending = "pending"
	OutboxStatusDone    = "done"
	OutboxStatusFailed  = "failed" // exhausted retries; swept by full reindex
)

// OutboxEntry is a durable index-sync intent recorded alongside a catalog
// mutation. The indexer worker processes pending entries with capped backoff;
// the catalog write path never waits on the index.
type OutboxEntry struct {
	ID            int64      `db:"id"`
	ProductID     string     `db:"product_id"`
	Op            string     `db:"op"`
	Status        string     `db:"status"`
	Attempts      int        `db:"attempts"`
	NextAttemptAt time.Time  `db:"next_attempt_at"`
	LastError     *string    `db:"last_error"`
	CreatedAt     time.Time  `db:"created_at"`
	DoneAt        *time.Time `db:"done_at"`
}
