package domain

// Status is the shared lifecycle state used by products, categories and users.
// Soft deletion is a flip to StatusInactive; rows are never hard-deleted through
// the API (guard checks may still refuse the flip).
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"   // products only: created but not yet published
	StatusPending  Status = "pending" // users only: registered but OTP not verified
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft, StatusPending:
		return true
	}
	return false
}

// Visible reports whether an entity in this state should appear in public
// reads and in the search index.
func (s Status) Visible() bool {
	return s == StatusActive
}
