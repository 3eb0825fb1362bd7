package timelog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jornada-app/jornada-backend-go/internal/domain/identity"
	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTx runs the unit of work without a real database transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeTimeLogRepo is an in-memory event store with the same conditional
// append guard the postgres repository applies.
type fakeTimeLogRepo struct {
	logs   map[string][]timelog.TimeLog
	nextID int
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{logs: make(map[string][]timelog.TimeLog)}
}

func (f *fakeTimeLogRepo) LockUser(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeTimeLogRepo) AppendIf(ctx context.Context, log timelog.TimeLog, prevLogID *string) (timelog.TimeLog, error) {
	userLogs := f.logs[log.UserID]

	var latestID *string
	if len(userLogs) > 0 {
		latestID = &userLogs[len(userLogs)-1].ID
	}

	match := (latestID == nil && prevLogID == nil) ||
		(latestID != nil && prevLogID != nil && *latestID == *prevLogID)
	if !match {
		return timelog.TimeLog{}, timelog.ErrTransitionConflict
	}

	f.nextID++
	log.ID = fmt.Sprintf("log-%d", f.nextID)
	log.Timestamp = time.Now()
	log.CreatedAt = log.Timestamp
	f.logs[log.UserID] = append(userLogs, log)
	return log, nil
}

func (f *fakeTimeLogRepo) GetLatestByUser(ctx context.Context, userID string) (*timelog.TimeLog, error) {
	userLogs := f.logs[userID]
	if len(userLogs) == 0 {
		return nil, nil
	}
	latest := userLogs[len(userLogs)-1]
	return &latest, nil
}

func (f *fakeTimeLogRepo) Query(ctx context.Context, filter timelog.QueryFilter) ([]timelog.TimeLog, error) {
	var result []timelog.TimeLog
	for _, userLogs := range f.logs {
		result = append(result, userLogs...)
	}
	return result, nil
}

func employeeCtx(userID string) context.Context {
	return identity.NewContext(context.Background(), identity.Identity{
		ID:    userID,
		Email: userID + "@example.com",
		Name:  "Test Employee",
		Role:  user.RoleEmployee,
	})
}

func submitReq(event timelog.EventType) timelog.SubmitRequest {
	lat, long := 41.38, 2.17
	return timelog.SubmitRequest{EventType: event, Latitude: &lat, Longitude: &long}
}

func TestTimeLogService_Submit_FirstEventMustBeClockIn(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	for _, event := range []timelog.EventType{timelog.EventLunchOut, timelog.EventLunchIn, timelog.EventClockOut} {
		_, err := svc.Submit(ctx, submitReq(event))
		var illegal *timelog.IllegalTransitionError
		require.ErrorAs(t, err, &illegal, "event %s", event)
		assert.Equal(t, timelog.StatusOffline, illegal.Current)
		assert.Equal(t, event, illegal.Requested)
	}

	result, err := svc.Submit(ctx, submitReq(timelog.EventClockIn))
	require.NoError(t, err)
	assert.Equal(t, timelog.EventClockIn, result.EventType)
	assert.Equal(t, timelog.StatusClockedIn, result.Status)
	assert.Equal(t, "emp-1", result.UserID)
	assert.False(t, result.Timestamp.IsZero())
}

func TestTimeLogService_Submit_FullCycle(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	steps := []struct {
		event timelog.EventType
		want  timelog.Status
	}{
		{timelog.EventClockIn, timelog.StatusClockedIn},
		{timelog.EventLunchOut, timelog.StatusOnLunch},
		{timelog.EventLunchIn, timelog.StatusClockedIn},
		{timelog.EventClockOut, timelog.StatusOffline},
	}

	for _, step := range steps {
		result, err := svc.Submit(ctx, submitReq(step.event))
		require.NoError(t, err, "event %s", step.event)
		assert.Equal(t, step.want, result.Status)
	}

	// Each accepted event becomes the current status for the next decision:
	// after a full cycle the next cycle starts cleanly.
	_, err := svc.Submit(ctx, submitReq(timelog.EventClockIn))
	require.NoError(t, err)
}

func TestTimeLogService_Submit_RepeatedStepRejected(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	_, err := svc.Submit(ctx, submitReq(timelog.EventClockIn))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submitReq(timelog.EventClockIn))
	var illegal *timelog.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, timelog.StatusClockedIn, illegal.Current)
	assert.Equal(t, timelog.EventClockIn, illegal.Requested)

	// Only one event was recorded.
	assert.Len(t, repo.logs["emp-1"], 1)
}

func TestTimeLogService_Submit_MalformedRequest(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	lat := 41.38
	cases := []timelog.SubmitRequest{
		{},
		{EventType: "SIESTA", Latitude: &lat, Longitude: &lat},
		{EventType: timelog.EventClockIn, Latitude: &lat},
	}
	for _, req := range cases {
		_, err := svc.Submit(ctx, req)
		require.Error(t, err)
		var illegal *timelog.IllegalTransitionError
		assert.False(t, errors.As(err, &illegal), "malformed input must not be reported as a transition failure")
		assert.Empty(t, repo.logs["emp-1"])
	}
}

func TestTimeLogService_Submit_NoIdentity(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)

	_, err := svc.Submit(context.Background(), submitReq(timelog.EventClockIn))
	assert.Error(t, err)
}

// raceTimeLogRepo makes the service read a stale "no events" state while a
// concurrent winner has already appended, so the conditional append fires.
type raceTimeLogRepo struct {
	*fakeTimeLogRepo
	staleReads int
}

func (r *raceTimeLogRepo) GetLatestByUser(ctx context.Context, userID string) (*timelog.TimeLog, error) {
	if r.staleReads > 0 {
		r.staleReads--
		return nil, nil
	}
	return r.fakeTimeLogRepo.GetLatestByUser(ctx, userID)
}

func TestTimeLogService_Submit_ConcurrentClockIn(t *testing.T) {
	inner := newFakeTimeLogRepo()
	repo := &raceTimeLogRepo{fakeTimeLogRepo: inner}
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	// First device wins.
	_, err := svc.Submit(ctx, submitReq(timelog.EventClockIn))
	require.NoError(t, err)

	// Second device raced the first: it decided against the stale OFFLINE
	// state, and the guarded append must reject it.
	repo.staleReads = 1
	_, err = svc.Submit(ctx, submitReq(timelog.EventClockIn))
	var illegal *timelog.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, timelog.EventClockIn, illegal.Requested)
	assert.Equal(t, timelog.StatusClockedIn, illegal.Current)

	// Exactly one CLOCK_IN was recorded.
	assert.Len(t, inner.logs["emp-1"], 1)
}

func TestTimeLogService_Status(t *testing.T) {
	repo := newFakeTimeLogRepo()
	svc := NewTimeLogService(passthroughTx{}, repo)
	ctx := employeeCtx("emp-1")

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusOffline, status.Status)
	assert.Nil(t, status.Since)

	_, err = svc.Submit(ctx, submitReq(timelog.EventClockIn))
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, timelog.StatusClockedIn, status.Status)
	require.NotNil(t, status.Since)
}
