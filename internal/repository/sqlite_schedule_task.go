package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// SQLiteScheduleTaskRepo implements ScheduleTaskRepo using a SQLite database.
type SQLiteScheduleTaskRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleTaskRepo creates a new SQLiteScheduleTaskRepo.
func NewSQLiteScheduleTaskRepo(conn db.DBTX) *SQLiteScheduleTaskRepo {
	return &SQLiteScheduleTaskRepo{db: conn}
}

const scheduleTaskColumns = `id, project_id, estimate_id, synthetic_id, kind, room, trade,
	phase_code, phase_label, start_date, end_date, duration_days, total_labor_hours,
	crew_size, predecessor_ids, created_at, updated_at`

func (r *SQLiteScheduleTaskRepo) Create(ctx context.Context, t *domain.ScheduleTask) error {
	preds, err := encodePredecessors(t.PredecessorIDs)
	if err != nil {
		return err
	}
	var room any
	if t.Room != "" {
		room = t.Room
	}

	query := `INSERT INTO schedule_tasks (` + scheduleTaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.EstimateID, t.SyntheticID,
		string(t.Kind), room, t.Trade,
		t.PhaseCode, t.PhaseLabel,
		t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout), t.DurationDays,
		nullableFloatToValue(t.TotalLaborHours), nullableIntToValue(t.CrewSize),
		preds,
		formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule task %s: %w", t.SyntheticID, err)
	}
	return nil
}

func (r *SQLiteScheduleTaskRepo) UpdateTiming(ctx context.Context, t *domain.ScheduleTask) error {
	preds, err := encodePredecessors(t.PredecessorIDs)
	if err != nil {
		return err
	}
	query := `UPDATE schedule_tasks
		SET start_date = ?, end_date = ?, duration_days = ?, total_labor_hours = ?, crew_size = ?,
		    predecessor_ids = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout), t.DurationDays,
		nullableFloatToValue(t.TotalLaborHours), nullableIntToValue(t.CrewSize),
		preds, formatTimestamp(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule task %s: %w", t.SyntheticID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteScheduleTaskRepo) ListByEstimate(ctx context.Context, projectID, estimateID string) ([]domain.ScheduleTask, error) {
	query := `SELECT ` + scheduleTaskColumns + ` FROM schedule_tasks
		WHERE project_id = ? AND estimate_id = ?
		ORDER BY phase_code, start_date, synthetic_id`
	return r.query(ctx, query, projectID, estimateID)
}

func (r *SQLiteScheduleTaskRepo) ListOverlapping(ctx context.Context, projectID string, from, to time.Time) ([]domain.ScheduleTask, error) {
	query := `SELECT ` + scheduleTaskColumns + ` FROM schedule_tasks
		WHERE project_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY phase_code, start_date, synthetic_id`
	return r.query(ctx, query, projectID, to.Format(dateLayout), from.Format(dateLayout))
}

func (r *SQLiteScheduleTaskRepo) query(ctx context.Context, query string, args ...any) ([]domain.ScheduleTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduleTask
	for rows.Next() {
		t, err := scanScheduleTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule tasks: %w", err)
	}
	return tasks, nil
}

func scanScheduleTask(row rowScanner) (*domain.ScheduleTask, error) {
	var t domain.ScheduleTask
	var (
		kind, startStr, endStr, predsJSON, createdAtStr, updatedAtStr string
		room                                                          sql.NullString
		hours                                                         sql.NullFloat64
		crew                                                          sql.NullInt64
	)
	if err := row.Scan(
		&t.ID, &t.ProjectID, &t.EstimateID, &t.SyntheticID,
		&kind, &room, &t.Trade,
		&t.PhaseCode, &t.PhaseLabel,
		&startStr, &endStr, &t.DurationDays,
		&hours, &crew, &predsJSON,
		&createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, fmt.Errorf("scanning schedule task: %w", err)
	}

	t.Kind = domain.TaskKind(kind)
	t.Room = room.String
	t.TotalLaborHours = nullFloatPtr(hours)
	t.CrewSize = nullIntPtr(crew)

	var err error
	if t.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if err := json.Unmarshal([]byte(predsJSON), &t.PredecessorIDs); err != nil {
		return nil, fmt.Errorf("decoding predecessor_ids: %w", err)
	}
	if t.PredecessorIDs == nil {
		t.PredecessorIDs = []string{}
	}
	if t.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

func encodePredecessors(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding predecessor_ids: %w", err)
	}
	return string(b), nil
}
