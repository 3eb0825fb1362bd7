package timelog

import (
	"context"
	"time"
)

// QueryFilter restricts the historical query. Nil fields mean "no filter";
// all-nil returns the full event history, which is intentional.
type QueryFilter struct {
	UserID *string
	// From is inclusive, Until is exclusive ("timestamp < Until").
	From  *time.Time
	Until *time.Time
}

// TimeLogRepository is the append-only event store. Timestamps are assigned
// by the store at insert time.
type TimeLogRepository interface {
	// LockUser takes a per-user advisory lock for the rest of the current
	// transaction, serializing concurrent read-decide-append sequences for
	// the same user. Must be called inside a transaction.
	LockUser(ctx context.Context, userID string) error

	// AppendIf inserts the log only while the user's latest row id still
	// equals prevLogID (nil = the user has no logs yet). Losing that guard
	// returns ErrTransitionConflict.
	AppendIf(ctx context.Context, log TimeLog, prevLogID *string) (TimeLog, error)

	// GetLatestByUser returns the user's most recent log, or nil when the
	// user has none.
	GetLatestByUser(ctx context.Context, userID string) (*TimeLog, error)

	// Query returns logs matching the filter joined with the owner's display
	// name, ordered newest-first (timestamp DESC, id DESC for exact ties).
	Query(ctx context.Context, filter QueryFilter) ([]TimeLog, error)
}
