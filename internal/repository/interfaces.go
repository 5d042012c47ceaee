package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type EstimateRepo interface {
	Create(ctx context.Context, e *domain.Estimate) error
	// GetForProject returns the estimate only when it belongs to projectID.
	GetForProject(ctx context.Context, projectID, estimateID string) (*domain.Estimate, error)
	CreateLines(ctx context.Context, lines []domain.EstimateLine) error
	ListLines(ctx context.Context, estimateID string) ([]domain.EstimateLine, error)
}

type CatalogRepo interface {
	CreatePriceList(ctx context.Context, pl *domain.PriceList) error
	CreateEntries(ctx context.Context, entries []domain.LaborCatalogEntry) error
	// DeactivateKind clears is_active on every price list of kind.
	DeactivateKind(ctx context.Context, kind string) error
	// GetActive returns the active price list of kind with the highest revision.
	GetActive(ctx context.Context, kind string) (*domain.PriceList, error)
	// ListEntries returns the entries of a price list whose normalized
	// category and selector are in the given sets.
	ListEntries(ctx context.Context, priceListID string, categories, selectors []string) ([]domain.LaborCatalogEntry, error)
}

type CapacityRepo interface {
	// ListForProject returns company-wide rows then project rows, each by trade.
	ListForProject(ctx context.Context, companyID, projectID string) ([]domain.TradeCapacity, error)
	Upsert(ctx context.Context, c *domain.TradeCapacity) (*domain.TradeCapacity, error)
}

type ScheduleTaskRepo interface {
	Create(ctx context.Context, t *domain.ScheduleTask) error
	// UpdateTiming rewrites the schedule fields of a task in place.
	UpdateTiming(ctx context.Context, t *domain.ScheduleTask) error
	// ListByEstimate orders by phase code, then start date.
	ListByEstimate(ctx context.Context, projectID, estimateID string) ([]domain.ScheduleTask, error)
	// ListOverlapping returns project tasks whose [start, end] meets [from, to],
	// ordered like ListByEstimate.
	ListOverlapping(ctx context.Context, projectID string, from, to time.Time) ([]domain.ScheduleTask, error)
}

type ChangeLogRepo interface {
	Create(ctx context.Context, e *domain.ChangeLogEntry) error
	// ListLatest returns up to limit entries, newest first.
	ListLatest(ctx context.Context, projectID, estimateID string, limit int) ([]domain.ChangeLogEntry, error)
}
