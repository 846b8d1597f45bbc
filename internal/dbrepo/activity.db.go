package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type ActivityLogRepo struct {
	db *pgxpool.Pool
}

func NewActivityLogRepo(db *pgxpool.Pool) *ActivityLogRepo {
	return &ActivityLogRepo{db: db}
}

// SaveLog appends one audit line. Failures here are reported but must never
// abort the operation being logged.
func (r *ActivityLogRepo) SaveLog(ctx context.Context, userID int64, action, details, logType string) error {
	query := `
		INSERT INTO activity_logs (user_id, action, details, type, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
	`
	if _, err := r.db.Exec(ctx, query, userID, action, details, logType); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListLogs retrieves the most recent audit lines
func (r *ActivityLogRepo) ListLogs(ctx context.Context, limit int64) ([]models.ActivityLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	query := `
		SELECT id, user_id, action, details, type, created_at
		FROM activity_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Details, &l.Type, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return logs, nil
}
