package timelog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/repository/postgresql"
)

type TimeLogServiceImpl struct {
	tx postgresql.TxManager
	timelog.TimeLogRepository
}

func NewTimeLogService(tx postgresql.TxManager, timeLogRepository timelog.TimeLogRepository) timelog.TimeLogService {
	return &TimeLogServiceImpl{
		tx:                tx,
		TimeLogRepository: timeLogRepository,
	}
}

// Submit implements timelog.TimeLogService. The read-decide-append sequence
// runs under a per-user advisory lock so two devices racing the same
// transition cannot both win; the loser re-reads the winner's event and the
// transition table rejects it.
func (s *TimeLogServiceImpl) Submit(ctx context.Context, req timelog.SubmitRequest) (timelog.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	ident, ok := identity.FromContext(ctx)
	if !ok {
		return timelog.TimeLogResponse{}, fmt.Errorf("no identity resolved for request")
	}

	var created timelog.TimeLog
	var status timelog.Status

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.TimeLogRepository.LockUser(txCtx, ident.ID); err != nil {
			return err
		}

		latest, err := s.TimeLogRepository.GetLatestByUser(txCtx, ident.ID)
		if err != nil {
			return fmt.Errorf("failed to get latest time log: %w", err)
		}

		next, err := timelog.Decide(timelog.StatusAfter(latest), req.EventType)
		if err != nil {
			return err
		}
		status = next

		var prevLogID *string
		if latest != nil {
			prevLogID = &latest.ID
		}

		created, err = s.TimeLogRepository.AppendIf(txCtx, timelog.TimeLog{
			UserID:    ident.ID,
			EventType: req.EventType,
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}, prevLogID)
		return err
	})
	if err != nil {
		// The advisory lock makes the conditional append a second line of
		// defense; if it still fires, report it as the workflow violation
		// the losing caller effectively committed.
		if errors.Is(err, timelog.ErrTransitionConflict) {
			latest, lerr := s.TimeLogRepository.GetLatestByUser(ctx, ident.ID)
			if lerr != nil {
				return timelog.TimeLogResponse{}, err
			}
			return timelog.TimeLogResponse{}, &timelog.IllegalTransitionError{
				Current:   timelog.StatusAfter(latest),
				Requested: req.EventType,
			}
		}
		return timelog.TimeLogResponse{}, err
	}

	return timelog.TimeLogResponse{
		ID:        created.ID,
		UserID:    created.UserID,
		EventType: created.EventType,
		Timestamp: created.Timestamp,
		Latitude:  created.Latitude,
		Longitude: created.Longitude,
		Status:    status,
	}, nil
}

// Status implements timelog.TimeLogService.
func (s *TimeLogServiceImpl) Status(ctx context.Context) (timelog.StatusResponse, error) {
	ident, ok := identity.FromContext(ctx)
	if !ok {
		return timelog.StatusResponse{}, fmt.Errorf("no identity resolved for request")
	}

	latest, err := s.TimeLogRepository.GetLatestByUser(ctx, ident.ID)
	if err != nil {
		return timelog.StatusResponse{}, fmt.Errorf("failed to get latest time log: %w", err)
	}

	resp := timelog.StatusResponse{Status: timelog.StatusAfter(latest)}
	if latest != nil {
		resp.Since = &latest.Timestamp
	}
	return resp, nil
}
