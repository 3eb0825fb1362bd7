package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/report"
	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	timelog.TimeLogRepository
}

func NewReportService(timeLogRepository timelog.TimeLogRepository) report.ReportService {
	return &ReportServiceImpl{
		TimeLogRepository: timeLogRepository,
	}
}

// Query implements report.ReportService.
func (s *ReportServiceImpl) Query(ctx context.Context, req report.QueryRequest) ([]report.Row, error) {
	ident, ok := identity.FromContext(ctx)
	if !ok || !ident.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	logs, err := s.TimeLogRepository.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}

	rows := make([]report.Row, 0, len(logs))
	for _, log := range logs {
		row := report.Row{
			ID:        log.ID,
			UserID:    log.UserID,
			EventType: log.EventType,
			Timestamp: log.Timestamp,
			Latitude:  log.Latitude,
			Longitude: log.Longitude,
		}
		// Deleted users leave a NULL name behind; render it empty.
		if log.UserName != nil {
			row.UserName = *log.UserName
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// buildFilter turns the date strings into timestamp bounds. endDate is kept
// inclusive through 23:59:59 by filtering "timestamp < endDate + 1 day"
// instead of truncating at the day boundary.
func buildFilter(req report.QueryRequest) (timelog.QueryFilter, error) {
	var filter timelog.QueryFilter

	if !validator.IsEmpty(req.UserID) {
		userID := req.UserID
		filter.UserID = &userID
	}

	if !validator.IsEmpty(req.StartDate) {
		start, ok := validator.IsValidDate(req.StartDate)
		if !ok {
			return timelog.QueryFilter{}, validator.ValidationErrors{{Field: "startDate", Message: "startDate must be a valid date in YYYY-MM-DD format"}}
		}
		from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		filter.From = &from
	}

	if !validator.IsEmpty(req.EndDate) {
		end, ok := validator.IsValidDate(req.EndDate)
		if !ok {
			return timelog.QueryFilter{}, validator.ValidationErrors{{Field: "endDate", Message: "endDate must be a valid date in YYYY-MM-DD format"}}
		}
		until := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		filter.Until = &until
	}

	return filter, nil
}
