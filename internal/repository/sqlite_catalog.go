package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

func (r *SQLiteCatalogRepo) CreatePriceList(ctx context.Context, pl *domain.PriceList) error {
	query := `INSERT INTO price_lists (id, kind, revision, is_active, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		pl.ID, pl.Kind, pl.Revision, boolToInt(pl.IsActive), formatTimestamp(pl.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting price list: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) CreateEntries(ctx context.Context, entries []domain.LaborCatalogEntry) error {
	query := `INSERT INTO price_list_entries
		(id, price_list_id, category, selector, activity, unit, labor_minimum, wage, labor_burden, labor_overhead)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range entries {
		e := &entries[i]
		_, err := r.db.ExecContext(ctx, query,
			e.ID, e.PriceListID,
			e.Category, e.Selector, e.Activity,
			e.Unit, e.LaborMinimumCode,
			e.Wage, e.LaborBurden, e.LaborOverhead,
		)
		if err != nil {
			return fmt.Errorf("inserting price list entry %s/%s/%s: %w", e.Category, e.Selector, e.Activity, err)
		}
	}
	return nil
}

func (r *SQLiteCatalogRepo) DeactivateKind(ctx context.Context, kind string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE price_lists SET is_active = 0 WHERE kind = ? AND is_active = 1`, kind)
	if err != nil {
		return fmt.Errorf("deactivating %s price lists: %w", kind, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetActive(ctx context.Context, kind string) (*domain.PriceList, error) {
	query := `SELECT id, kind, revision, is_active, created_at FROM price_lists
		WHERE kind = ? AND is_active = 1
		ORDER BY revision DESC, created_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, kind)

	var pl domain.PriceList
	var active int
	var createdAtStr string
	if err := row.Scan(&pl.ID, &pl.Kind, &pl.Revision, &active, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active %s price list: %w", kind, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning price list: %w", err)
	}
	pl.IsActive = intToBool(active)

	var err error
	if pl.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &pl, nil
}

func (r *SQLiteCatalogRepo) ListEntries(
	ctx context.Context,
	priceListID string,
	categories, selectors []string,
) ([]domain.LaborCatalogEntry, error) {
	if len(categories) == 0 || len(selectors) == 0 {
		return nil, nil
	}

	catIn, catArgs := inClause(categories)
	selIn, selArgs := inClause(selectors)
	query := `SELECT id, price_list_id, category, selector, activity, unit, labor_minimum,
		wage, labor_burden, labor_overhead
		FROM price_list_entries
		WHERE price_list_id = ?
		  AND UPPER(TRIM(category)) IN ` + catIn + `
		  AND UPPER(TRIM(selector)) IN ` + selIn + `
		ORDER BY rowid`

	args := append([]any{priceListID}, catArgs...)
	args = append(args, selArgs...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing price list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LaborCatalogEntry
	for rows.Next() {
		var e domain.LaborCatalogEntry
		if err := rows.Scan(
			&e.ID, &e.PriceListID,
			&e.Category, &e.Selector, &e.Activity,
			&e.Unit, &e.LaborMinimumCode,
			&e.Wage, &e.LaborBurden, &e.LaborOverhead,
		); err != nil {
			return nil, fmt.Errorf("scanning price list entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price list entries: %w", err)
	}
	return entries, nil
}
