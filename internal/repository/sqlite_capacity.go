package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// SQLiteCapacityRepo implements CapacityRepo using a SQLite database.
type SQLiteCapacityRepo struct {
	db db.DBTX
}

// NewSQLiteCapacityRepo creates a new SQLiteCapacityRepo.
func NewSQLiteCapacityRepo(conn db.DBTX) *SQLiteCapacityRepo {
	return &SQLiteCapacityRepo{db: conn}
}

const capacityColumns = `id, company_id, project_id, trade, max_concurrent, created_at, updated_at`

func (r *SQLiteCapacityRepo) ListForProject(ctx context.Context, companyID, projectID string) ([]domain.TradeCapacity, error) {
	query := `SELECT ` + capacityColumns + ` FROM trade_capacity
		WHERE company_id = ? AND (project_id IS NULL OR project_id = ?)
		ORDER BY project_id IS NOT NULL, trade`
	rows, err := r.db.QueryContext(ctx, query, companyID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing trade capacity: %w", err)
	}
	defer rows.Close()

	var out []domain.TradeCapacity
	for rows.Next() {
		c, err := scanCapacity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trade capacity: %w", err)
	}
	return out, nil
}

// Upsert writes c keyed by (company, project or none, trade). When a row
// for that key exists its limit is updated and its id kept. The write is a
// single statement so concurrent upserts of one key never race.
func (r *SQLiteCapacityRepo) Upsert(ctx context.Context, c *domain.TradeCapacity) (*domain.TradeCapacity, error) {
	var projectArg any
	if c.ProjectID != nil {
		projectArg = *c.ProjectID
	}

	query := `INSERT INTO trade_capacity (` + capacityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, IFNULL(project_id, ''), trade) DO UPDATE SET
			max_concurrent = excluded.max_concurrent,
			updated_at = excluded.updated_at
		RETURNING ` + capacityColumns
	saved, err := scanCapacity(r.db.QueryRowContext(ctx, query,
		c.ID, c.CompanyID, projectArg, c.Trade, c.MaxConcurrent,
		formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("upserting trade capacity: %w", err)
	}
	return saved, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapacity(row rowScanner) (*domain.TradeCapacity, error) {
	var c domain.TradeCapacity
	var projectID sql.NullString
	var createdAtStr, updatedAtStr string
	if err := row.Scan(
		&c.ID, &c.CompanyID, &projectID, &c.Trade, &c.MaxConcurrent, &createdAtStr, &updatedAtStr,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trade capacity: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning trade capacity: %w", err)
	}
	if projectID.Valid {
		pid := projectID.String
		c.ProjectID = &pid
	}

	var err error
	if c.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
