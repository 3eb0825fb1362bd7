package timelog

import (
	"errors"
	"fmt"
)

// Timelog domain errors
var (
	ErrTimeLogNotFound = errors.New("time log not found")

	// ErrTransitionConflict is returned by the store when a concurrent submit
	// changed the latest log between decision and append.
	ErrTransitionConflict = errors.New("latest time log changed during submit")
)

// IllegalTransitionError carries both the current status and the rejected
// event so the caller can render an actionable message.
type IllegalTransitionError struct {
	Current   Status
	Requested EventType
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot record %s while %s", e.Requested, e.Current)
}
