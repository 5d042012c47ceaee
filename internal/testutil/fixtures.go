package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestCompanyID is the tenant fixtures belong to unless overridden.
const TestCompanyID = "company-test"

var testLineSeq atomic.Int64

// FixedNow is the creation time fixtures use, a Friday.
var FixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithCompany(id string) ProjectOption {
	return func(p *domain.Project) {
		p.CompanyID = id
	}
}

func WithProjectCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		CompanyID: TestCompanyID,
		Name:      name,
		CreatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Estimate options
type EstimateOption func(*domain.Estimate)

func WithImportedAt(t time.Time) EstimateOption {
	return func(e *domain.Estimate) {
		e.ImportedAt = &t
	}
}

func NewTestEstimate(projectID string, opts ...EstimateOption) *domain.Estimate {
	e := &domain.Estimate{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Label:     "Estimate",
		CreatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EstimateLine options
type LineOption func(*domain.EstimateLine)

func WithNote(note string) LineOption {
	return func(l *domain.EstimateLine) {
		l.Note = note
	}
}

func WithSourceDate(d time.Time) LineOption {
	return func(l *domain.EstimateLine) {
		l.SourceDate = &d
	}
}

func WithActivity(a string) LineOption {
	return func(l *domain.EstimateLine) {
		l.Activity = a
	}
}

// NewTestLine builds an estimate line with activity "+" and an increasing seq.
func NewTestLine(estimateID, category, selector, quantity, room string, opts ...LineOption) domain.EstimateLine {
	l := domain.EstimateLine{
		ID:         uuid.New().String(),
		EstimateID: estimateID,
		Seq:        int(testLineSeq.Add(1)),
		Category:   category,
		Selector:   selector,
		Activity:   "+",
		Quantity:   decimal.RequireFromString(quantity),
		Room:       room,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// PriceList options
type PriceListOption func(*domain.PriceList)

func WithRevision(r int) PriceListOption {
	return func(pl *domain.PriceList) {
		pl.Revision = r
	}
}

func WithInactive() PriceListOption {
	return func(pl *domain.PriceList) {
		pl.IsActive = false
	}
}

func WithKind(kind string) PriceListOption {
	return func(pl *domain.PriceList) {
		pl.Kind = kind
	}
}

// NewTestPriceList builds an active GOLDEN price list at revision 1.
func NewTestPriceList(opts ...PriceListOption) *domain.PriceList {
	pl := &domain.PriceList{
		ID:        uuid.New().String(),
		Kind:      domain.PriceListKindGolden,
		Revision:  1,
		IsActive:  true,
		CreatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// NewHourlyEntry builds the HR entry under category/selector that sets the
// labor rate of laborMinimum. It is only loaded for estimates with lines of
// that category and selector.
func NewHourlyEntry(priceListID, category, selector, laborMinimum, rate string) domain.LaborCatalogEntry {
	return domain.LaborCatalogEntry{
		ID:               uuid.New().String(),
		PriceListID:      priceListID,
		Category:         category,
		Selector:         selector,
		Unit:             domain.HourlyUnit,
		LaborMinimumCode: laborMinimum,
		Wage:             decimal.RequireFromString(rate),
	}
}

// NewUnitEntry builds a per-unit entry whose labor cost is cost.
func NewUnitEntry(priceListID, category, selector, activity, laborMinimum, cost string) domain.LaborCatalogEntry {
	return domain.LaborCatalogEntry{
		ID:               uuid.New().String(),
		PriceListID:      priceListID,
		Category:         category,
		Selector:         selector,
		Activity:         activity,
		Unit:             "SF",
		LaborMinimumCode: laborMinimum,
		Wage:             decimal.RequireFromString(cost),
	}
}

// NewTestCapacity builds a capacity row; a nil projectID scopes it company-wide.
func NewTestCapacity(companyID string, projectID *string, trade string, maxConcurrent int) *domain.TradeCapacity {
	return &domain.TradeCapacity{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ProjectID:     projectID,
		Trade:         trade,
		MaxConcurrent: maxConcurrent,
		CreatedAt:     FixedNow,
		UpdatedAt:     FixedNow,
	}
}

// NewTestScheduleTask builds a persisted WORK task.
func NewTestScheduleTask(projectID, estimateID, syntheticID, trade string, start, end time.Time) *domain.ScheduleTask {
	hours := 8.0
	crew := 1
	return &domain.ScheduleTask{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		EstimateID: estimateID,
		ScheduledTask: domain.ScheduledTask{
			SyntheticID:     syntheticID,
			Kind:            domain.TaskWork,
			Room:            "Kitchen",
			Trade:           trade,
			PhaseCode:       50,
			PhaseLabel:      trade,
			StartDate:       start,
			EndDate:         end,
			DurationDays:    1,
			TotalLaborHours: &hours,
			CrewSize:        &crew,
			PredecessorIDs:  []string{},
		},
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
}
