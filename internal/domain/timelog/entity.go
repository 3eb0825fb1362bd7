package timelog

import (
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

// EventType is one step of the shift workflow.
type EventType string

const (
	EventClockIn  EventType = "CLOCK_IN"
	EventLunchOut EventType = "LUNCH_OUT"
	EventLunchIn  EventType = "LUNCH_IN"
	EventClockOut EventType = "CLOCK_OUT"
)

// EventTypes lists every recognized event type value.
var EventTypes = []string{
	string(EventClockIn), string(EventLunchOut), string(EventLunchIn), string(EventClockOut),
}

// IsValidEventType checks if the value is one of the recognized event types.
func IsValidEventType(e EventType) bool {
	return validator.IsInSlice(string(e), EventTypes)
}

// TimeLog is a single recorded shift event. Rows are append-only: never
// updated or deleted, and kept even after the owning user is removed.
type TimeLog struct {
	ID        string
	UserID    string
	EventType EventType
	Timestamp time.Time // server-assigned at insert
	Latitude  float64
	Longitude float64
	CreatedAt time.Time

	// DTO / Join
	UserName *string
}
