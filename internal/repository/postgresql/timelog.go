package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jornada-app/jornada-backend-go/internal/domain/timelog"
	"github.com/jornada-app/jornada-backend-go/internal/pkg/database"
)

type timeLogRepositoryImpl struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) timelog.TimeLogRepository {
	return &timeLogRepositoryImpl{db: db}
}

// LockUser implements timelog.TimeLogRepository. hashtext folds the user id
// into the bigint key space pg_advisory_xact_lock expects; the lock releases
// at transaction end.
func (r *timeLogRepositoryImpl) LockUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	return nil
}

// AppendIf implements timelog.TimeLogRepository. The insert only happens
// while the user's latest row id still equals prevLogID, which serializes the
// read-decide-append sequence against concurrent submits from the same user:
// the loser's subquery sees the winner's row and inserts nothing.
func (r *timeLogRepositoryImpl) AppendIf(ctx context.Context, log timelog.TimeLog, prevLogID *string) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timelog.TimeLog{}, fmt.Errorf("failed to generate time log id: %w", err)
	}
	log.ID = id.String()

	query := `
		INSERT INTO time_logs (id, user_id, event_type, latitude, longitude, timestamp)
		SELECT $1, $2, $3, $4, $5, NOW()
		WHERE COALESCE((
			SELECT id FROM time_logs
			WHERE user_id = $2
			ORDER BY timestamp DESC, id DESC
			LIMIT 1
		), '') = COALESCE($6, '')
		RETURNING timestamp, created_at
	`

	err = q.QueryRow(ctx, query,
		log.ID, log.UserID, log.EventType, log.Latitude, log.Longitude, prevLogID,
	).Scan(&log.Timestamp, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timelog.TimeLog{}, timelog.ErrTransitionConflict
		}
		return timelog.TimeLog{}, fmt.Errorf("failed to append time log: %w", err)
	}

	return log, nil
}

// GetLatestByUser implements timelog.TimeLogRepository.
func (r *timeLogRepositoryImpl) GetLatestByUser(ctx context.Context, userID string) (*timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, event_type, timestamp, latitude, longitude, created_at
		FROM time_logs
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	var log timelog.TimeLog
	err := q.QueryRow(ctx, query, userID).Scan(
		&log.ID, &log.UserID, &log.EventType, &log.Timestamp, &log.Latitude, &log.Longitude, &log.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest time log: %w", err)
	}

	return &log, nil
}

// Query implements timelog.TimeLogRepository. The join is LEFT so events of
// deleted users keep showing up in reports with a NULL name.
func (r *timeLogRepositoryImpl) Query(ctx context.Context, filter timelog.QueryFilter) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("t.user_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("t.timestamp >= $%d", len(args)))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		conditions = append(conditions, fmt.Sprintf("t.timestamp < $%d", len(args)))
	}

	query := `
		SELECT t.id, t.user_id, t.event_type, t.timestamp, t.latitude, t.longitude, t.created_at,
			   u.name AS user_name
		FROM time_logs t
		LEFT JOIN users u ON u.id = t.user_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.timestamp DESC, t.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}
	defer rows.Close()

	var logs []timelog.TimeLog
	for rows.Next() {
		var log timelog.TimeLog
		if err := rows.Scan(
			&log.ID, &log.UserID, &log.EventType, &log.Timestamp, &log.Latitude, &log.Longitude, &log.CreatedAt,
			&log.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time logs: %w", err)
	}

	return logs, nil
}
