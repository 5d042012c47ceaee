package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/importer"
	"github.com/alexanderramin/crewplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes the project, estimate, lines, optional price list and
// capacity rows in one transaction. An active price list deactivates the
// other lists of its kind.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import.estimate", startedAt, fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["project_id"] = generated.Project.ID
	fields["estimate_id"] = generated.Estimate.ID
	fields["line_count"] = len(generated.Lines)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		estimates := repository.NewSQLiteEstimateRepo(tx)
		catalog := repository.NewSQLiteCatalogRepo(tx)
		capacity := repository.NewSQLiteCapacityRepo(tx)

		if err := projects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		if err := estimates.Create(ctx, generated.Estimate); err != nil {
			return fmt.Errorf("creating estimate: %w", err)
		}
		if err := estimates.CreateLines(ctx, generated.Lines); err != nil {
			return fmt.Errorf("creating estimate lines: %w", err)
		}

		if pl := generated.PriceList; pl != nil {
			if pl.IsActive {
				if err := catalog.DeactivateKind(ctx, pl.Kind); err != nil {
					return fmt.Errorf("deactivating %s price lists: %w", pl.Kind, err)
				}
			}
			if err := catalog.CreatePriceList(ctx, pl); err != nil {
				return fmt.Errorf("creating price list: %w", err)
			}
			if err := catalog.CreateEntries(ctx, generated.Entries); err != nil {
				return fmt.Errorf("creating price list entries: %w", err)
			}
		}

		for _, row := range generated.Capacity {
			if _, err := capacity.Upsert(ctx, row); err != nil {
				return fmt.Errorf("saving %s capacity: %w", row.Trade, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:       generated.Project,
		Estimate:      generated.Estimate,
		LineCount:     len(generated.Lines),
		PriceList:     generated.PriceList,
		EntryCount:    len(generated.Entries),
		CapacityCount: len(generated.Capacity),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
