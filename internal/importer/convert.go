package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Generated holds the domain objects built from a fixture, ready for
// persistence. PriceList and Entries are nil when the fixture has no catalog.
type Generated struct {
	Project   *domain.Project
	Estimate  *domain.Estimate
	Lines     []domain.EstimateLine
	PriceList *domain.PriceList
	Entries   []domain.LaborCatalogEntry
	Capacity  []*domain.TradeCapacity
}

// ParseDecimal parses a quantity or money string. A leading "$", spaces and
// thousands separators are ignored.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseDecimal(s)
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := calendar.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) (*Generated, error) {
	now = now.UTC()

	project := &domain.Project{
		ID:        schema.Project.ID,
		CompanyID: schema.Project.CompanyID,
		Name:      schema.Project.Name,
		CreatedAt: now,
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if created, err := optionalDate(schema.Project.CreatedAt); err != nil {
		return nil, fmt.Errorf("parsing project.created_at: %w", err)
	} else if created != nil {
		project.CreatedAt = *created
	}

	importedAt, err := optionalDate(schema.Estimate.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing estimate.imported_at: %w", err)
	}
	estimate := &domain.Estimate{
		ID:         schema.Estimate.ID,
		ProjectID:  project.ID,
		Label:      schema.Estimate.Label,
		ImportedAt: importedAt,
		CreatedAt:  now,
	}
	if estimate.ID == "" {
		estimate.ID = uuid.New().String()
	}

	lines := make([]domain.EstimateLine, 0, len(schema.Estimate.Lines))
	for i, l := range schema.Estimate.Lines {
		qty, err := ParseDecimal(l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("estimate.lines[%d].quantity: %w", i, err)
		}
		sourceDate, err := optionalDate(l.SourceDate)
		if err != nil {
			return nil, fmt.Errorf("estimate.lines[%d].source_date: %w", i, err)
		}
		lines = append(lines, domain.EstimateLine{
			ID:         uuid.New().String(),
			EstimateID: estimate.ID,
			Seq:        i + 1,
			Category:   l.Category,
			Selector:   l.Selector,
			Activity:   l.Activity,
			Quantity:   qty,
			Room:       l.Room,
			Note:       l.Note,
			SourceDate: sourceDate,
		})
	}

	gen := &Generated{Project: project, Estimate: estimate, Lines: lines}

	if pl := schema.PriceList; pl != nil {
		kind := strings.ToUpper(strings.TrimSpace(pl.Kind))
		if kind == "" {
			kind = domain.PriceListKindGolden
		}
		gen.PriceList = &domain.PriceList{
			ID:        uuid.New().String(),
			Kind:      kind,
			Revision:  pl.Revision,
			IsActive:  pl.Active == nil || *pl.Active,
			CreatedAt: now,
		}
		for i, e := range pl.Entries {
			entry := domain.LaborCatalogEntry{
				ID:               uuid.New().String(),
				PriceListID:      gen.PriceList.ID,
				Category:         e.Category,
				Selector:         e.Selector,
				Activity:         e.Activity,
				Unit:             e.Unit,
				LaborMinimumCode: e.LaborMinimum,
			}
			if entry.Wage, err = ParseDecimal(e.Wage); err != nil {
				return nil, fmt.Errorf("price_list.entries[%d].wage: %w", i, err)
			}
			if entry.LaborBurden, err = optionalDecimal(e.LaborBurden); err != nil {
				return nil, fmt.Errorf("price_list.entries[%d].labor_burden: %w", i, err)
			}
			if entry.LaborOverhead, err = optionalDecimal(e.LaborOverhead); err != nil {
				return nil, fmt.Errorf("price_list.entries[%d].labor_overhead: %w", i, err)
			}
			gen.Entries = append(gen.Entries, entry)
		}
	}

	for _, c := range schema.Capacity {
		row := &domain.TradeCapacity{
			ID:            uuid.New().String(),
			CompanyID:     project.CompanyID,
			Trade:         strings.TrimSpace(c.Trade),
			MaxConcurrent: c.MaxConcurrent,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if c.Scope != string(domain.ScopeCompany) {
			pid := project.ID
			row.ProjectID = &pid
		}
		gen.Capacity = append(gen.Capacity, row)
	}

	return gen, nil
}
