package report

import (
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

// QueryRequest mirrors GET /reports query parameters. Empty strings mean "no
// filter"; all-empty returns the full event history.
type QueryRequest struct {
	UserID    string
	StartDate string // YYYY-MM-DD, inclusive from 00:00:00
	EndDate   string // YYYY-MM-DD, inclusive through 23:59:59
}

func (r *QueryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.StartDate) {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if !validator.IsEmpty(r.EndDate) {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Row is one reported shift event joined with the owner's display name. The
// name is empty when the owning user has been deleted; their events are kept
// for audit purposes.
type Row struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	UserName  string            `json:"userName"`
	EventType timelog.EventType `json:"eventType"`
	Timestamp time.Time         `json:"timestamp"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
}
