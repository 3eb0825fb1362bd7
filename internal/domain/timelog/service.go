package timelog

import "context"

type TimeLogService interface {
	// Submit records a shift event for the authenticated identity after
	// checking it is a legal transition from their latest recorded event.
	Submit(ctx context.Context, req SubmitRequest) (TimeLogResponse, error)

	// Status derives the authenticated identity's current shift status from
	// their latest recorded event.
	Status(ctx context.Context) (StatusResponse, error)
}
