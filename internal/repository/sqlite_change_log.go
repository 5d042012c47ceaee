package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// SQLiteChangeLogRepo implements ChangeLogRepo using a SQLite database.
// Entries are append-only; the repo has no update or delete.
type SQLiteChangeLogRepo struct {
	db db.DBTX
}

// NewSQLiteChangeLogRepo creates a new SQLiteChangeLogRepo.
func NewSQLiteChangeLogRepo(conn db.DBTX) *SQLiteChangeLogRepo {
	return &SQLiteChangeLogRepo{db: conn}
}

const changeLogColumns = `id, project_id, estimate_id, schedule_task_id, task_synthetic_id, change_type,
	previous_start_date, previous_end_date, previous_duration_days,
	new_start_date, new_end_date, new_duration_days, actor_id, created_at`

func (r *SQLiteChangeLogRepo) Create(ctx context.Context, e *domain.ChangeLogEntry) error {
	query := `INSERT INTO schedule_change_logs (` + changeLogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ProjectID, e.EstimateID, e.ScheduleTaskID, e.TaskSyntheticID, string(e.ChangeType),
		nullableTimeToString(e.PreviousStartDate, dateLayout),
		nullableTimeToString(e.PreviousEndDate, dateLayout),
		nullableFloatToValue(e.PreviousDurationDays),
		e.NewStartDate.Format(dateLayout), e.NewEndDate.Format(dateLayout), e.NewDurationDays,
		e.ActorID, formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting change log entry for %s: %w", e.TaskSyntheticID, err)
	}
	return nil
}

func (r *SQLiteChangeLogRepo) ListLatest(ctx context.Context, projectID, estimateID string, limit int) ([]domain.ChangeLogEntry, error) {
	query := `SELECT ` + changeLogColumns + ` FROM schedule_change_logs
		WHERE project_id = ? AND estimate_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, projectID, estimateID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing change log: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChangeLogEntry
	for rows.Next() {
		var e domain.ChangeLogEntry
		var (
			changeType, newStart, newEnd, createdAtStr string
			prevStart, prevEnd                         sql.NullString
			prevDuration                               sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.EstimateID, &e.ScheduleTaskID, &e.TaskSyntheticID, &changeType,
			&prevStart, &prevEnd, &prevDuration,
			&newStart, &newEnd, &e.NewDurationDays,
			&e.ActorID, &createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning change log entry: %w", err)
		}

		e.ChangeType = domain.ChangeType(changeType)
		e.PreviousStartDate = parseNullableTime(prevStart, dateLayout)
		e.PreviousEndDate = parseNullableTime(prevEnd, dateLayout)
		e.PreviousDurationDays = nullFloatPtr(prevDuration)

		var err error
		if e.NewStartDate, err = time.Parse(dateLayout, newStart); err != nil {
			return nil, fmt.Errorf("parsing new_start_date: %w", err)
		}
		if e.NewEndDate, err = time.Parse(dateLayout, newEnd); err != nil {
			return nil, fmt.Errorf("parsing new_end_date: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change log: %w", err)
	}
	return entries, nil
}
