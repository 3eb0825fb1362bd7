package timelog

import (
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

// ========================================
// TIMELOG DTOs
// ========================================

// SubmitRequest is the body of POST /timelog. Latitude and longitude are
// pointers so "missing" is distinguishable from a literal zero coordinate.
type SubmitRequest struct {
	EventType EventType `json:"eventType"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(string(r.EventType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "eventType",
			Message: "eventType is required",
		})
	} else if !IsValidEventType(r.EventType) {
		errs = append(errs, validator.ValidationError{
			Field:   "eventType",
			Message: "eventType must be one of CLOCK_IN, LUNCH_OUT, LUNCH_IN, CLOCK_OUT",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	EventType EventType `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    Status    `json:"status"`
}

type StatusResponse struct {
	Status Status     `json:"status"`
	Since  *time.Time `json:"since,omitempty"`
}
