package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(conn db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: conn}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	query := `INSERT INTO estimates (id, project_id, label, imported_at, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Label,
		nullableTimeToString(e.ImportedAt, time.RFC3339),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) GetForProject(ctx context.Context, projectID, estimateID string) (*domain.Estimate, error) {
	query := `SELECT id, project_id, label, imported_at, created_at
		FROM estimates WHERE id = ? AND project_id = ?`
	row := r.db.QueryRowContext(ctx, query, estimateID, projectID)

	var e domain.Estimate
	var importedAt sql.NullString
	var createdAtStr string
	if err := row.Scan(&e.ID, &e.ProjectID, &e.Label, &importedAt, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estimate %s in project %s: %w", estimateID, projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}

	var err error
	if e.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.ImportedAt = parseNullableTime(importedAt, time.RFC3339)
	return &e, nil
}

func (r *SQLiteEstimateRepo) CreateLines(ctx context.Context, lines []domain.EstimateLine) error {
	query := `INSERT INTO estimate_lines
		(id, estimate_id, seq, category, selector, activity, quantity, room, note, source_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range lines {
		l := &lines[i]
		_, err := r.db.ExecContext(ctx, query,
			l.ID,
			l.EstimateID,
			l.Seq,
			l.Category,
			l.Selector,
			l.Activity,
			l.Quantity,
			l.Room,
			l.Note,
			nullableTimeToString(l.SourceDate, dateLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting estimate line %d: %w", l.Seq, err)
		}
	}
	return nil
}

func (r *SQLiteEstimateRepo) ListLines(ctx context.Context, estimateID string) ([]domain.EstimateLine, error) {
	query := `SELECT id, estimate_id, seq, category, selector, activity, quantity, room, note, source_date
		FROM estimate_lines WHERE estimate_id = ? ORDER BY seq, rowid`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing estimate lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.EstimateLine
	for rows.Next() {
		var l domain.EstimateLine
		var sourceDate sql.NullString
		if err := rows.Scan(
			&l.ID, &l.EstimateID, &l.Seq,
			&l.Category, &l.Selector, &l.Activity,
			&l.Quantity, &l.Room, &l.Note, &sourceDate,
		); err != nil {
			return nil, fmt.Errorf("scanning estimate line: %w", err)
		}
		l.SourceDate = parseNullableTime(sourceDate, dateLayout)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate lines: %w", err)
	}
	return lines, nil
}
