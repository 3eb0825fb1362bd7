package timelog

// Status is the derived shift state of an employee: the event type of their
// most recent time log, folded to one of three workflow states.
type Status string

const (
	StatusOffline   Status = "OFFLINE"
	StatusClockedIn Status = "CLOCKED_IN"
	StatusOnLunch   Status = "ON_LUNCH"
)

// StatusAfter derives the current status from the most recent time log.
// No prior log and CLOCK_OUT both resolve to OFFLINE.
func StatusAfter(last *TimeLog) Status {
	if last == nil {
		return StatusOffline
	}
	switch last.EventType {
	case EventClockIn, EventLunchIn:
		return StatusClockedIn
	case EventLunchOut:
		return StatusOnLunch
	default:
		return StatusOffline
	}
}

// transitions is the legal (current status, requested event) table. Any pair
// not present is rejected.
var transitions = map[Status]map[EventType]Status{
	StatusOffline: {
		EventClockIn: StatusClockedIn,
	},
	StatusClockedIn: {
		EventLunchOut: StatusOnLunch,
		EventClockOut: StatusOffline,
	},
	StatusOnLunch: {
		EventLunchIn: StatusClockedIn,
	},
}

// Decide checks whether the requested event is legal from the current status.
// It is a pure function: the caller re-derives the status from the latest
// persisted log on every request and the store guards the subsequent append
// against concurrent submissions.
func Decide(current Status, requested EventType) (Status, error) {
	next, ok := transitions[current][requested]
	if !ok {
		return current, &IllegalTransitionError{Current: current, Requested: requested}
	}
	return next, nil
}
