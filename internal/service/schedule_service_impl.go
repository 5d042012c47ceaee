package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/scheduler"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultHistoryLimit caps how many change log entries History returns.
const DefaultHistoryLimit = 200

// ScheduleRepos groups the read collaborators of the schedule service.
type ScheduleRepos struct {
	Projects  repository.ProjectRepo
	Estimates repository.EstimateRepo
	Catalog   repository.CatalogRepo
	Capacity  repository.CapacityRepo
	Tasks     repository.ScheduleTaskRepo
	Changes   repository.ChangeLogRepo
}

type scheduleService struct {
	scope        scopeLoader
	repos        ScheduleRepos
	uow          db.UnitOfWork
	historyLimit int
	now          func() time.Time
	flight       singleflight.Group
	observer     UseCaseObserver
}

// ScheduleOption customizes a schedule service.
type ScheduleOption func(*scheduleService)

// WithHistoryLimit caps History results. Non-positive values keep the default.
func WithHistoryLimit(n int) ScheduleOption {
	return func(s *scheduleService) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithClock replaces time.Now for project start fallback and timestamps.
func WithClock(now func() time.Time) ScheduleOption {
	return func(s *scheduleService) { s.now = now }
}

// WithScheduleObserver reports use cases to obs.
func WithScheduleObserver(obs UseCaseObserver) ScheduleOption {
	return func(s *scheduleService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func NewScheduleService(repos ScheduleRepos, uow db.UnitOfWork, opts ...ScheduleOption) ScheduleService {
	s := &scheduleService{
		scope:        scopeLoader{projects: repos.Projects, estimates: repos.Estimates},
		repos:        repos,
		uow:          uow,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
		observer:     NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview builds a schedule without persisting anything. Identical
// concurrent requests share one computation, so callers must treat the
// result as read-only. The shared computation is not tied to any one
// caller's cancellation; a cancelled caller stops waiting on its own.
func (s *scheduleService) Preview(ctx context.Context, req contract.PreviewRequest) (preview *contract.SchedulePreview, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "estimate_id": req.EstimateID}
	defer func() {
		if preview != nil {
			fields["task_count"] = len(preview.ScheduledTasks)
			fields["conflict_count"] = len(preview.Conflicts)
			fields["missing_line_count"] = preview.MissingLineCount()
		}
		observe(ctx, s.observer, "schedule.preview", startedAt, fields, &err)
	}()

	if err = contract.Validate(req); err != nil {
		return nil, err
	}

	key, err := previewKey(req)
	if err != nil {
		return nil, err
	}
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.buildPreview(context.WithoutCancel(ctx), req)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		fields["shared"] = res.Shared
		return res.Val.(*contract.SchedulePreview), nil
	}
}

// previewKey identifies requests that produce the same preview. Map keys
// marshal in sorted order.
func previewKey(req contract.PreviewRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding preview request: %w", err)
	}
	return string(b), nil
}

func (s *scheduleService) buildPreview(ctx context.Context, req contract.PreviewRequest) (*contract.SchedulePreview, error) {
	project, estimate, err := s.scope.estimate(ctx, req.CompanyID, req.ProjectID, req.EstimateID)
	if err != nil {
		return nil, err
	}

	var (
		lines        []domain.EstimateLine
		capacityRows []domain.TradeCapacity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if lines, err = s.repos.Estimates.ListLines(gctx, estimate.ID); err != nil {
			return fmt.Errorf("loading estimate lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if capacityRows, err = s.repos.Capacity.ListForProject(gctx, project.CompanyID, project.ID); err != nil {
			return fmt.Errorf("loading trade capacity: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	preview := &contract.SchedulePreview{
		ProjectID:         project.ID,
		EstimateID:        estimate.ID,
		ProjectStart:      deriveProjectStart(req.StartDate(), project, estimate, lines, s.now()),
		WorkPackages:      []domain.WorkPackage{},
		MissingPriceItems: []domain.MissingPriceItem{},
		ScheduledTasks:    []domain.ScheduledTask{},
		Conflicts:         []domain.ScheduleConflict{},
	}
	if len(lines) == 0 {
		return preview, nil
	}

	catalog, err := s.loadCatalog(ctx, lines)
	if err != nil {
		return nil, err
	}

	labor := scheduler.EstimateLabor(lines, catalog)
	mitigation := scheduler.DetectMitigation(lines)
	built := scheduler.Build(scheduler.BuildInput{
		EstimateID:   estimate.ID,
		WorkPackages: labor.WorkPackages,
		Mitigation:   mitigation,
		ProjectStart: preview.ProjectStart,
		Overrides:    req.Overrides(),
		Capacity:     scheduler.NewCapacityTable(capacityRows),
	})

	if labor.WorkPackages != nil {
		preview.WorkPackages = labor.WorkPackages
	}
	if labor.MissingPriceItems != nil {
		preview.MissingPriceItems = labor.MissingPriceItems
	}
	preview.MitigationWindow = mitigation
	preview.TotalLaborHours = labor.TotalLaborHours
	if built.Tasks != nil {
		preview.ScheduledTasks = built.Tasks
	}
	if built.Conflicts != nil {
		preview.Conflicts = built.Conflicts
	}
	return preview, nil
}

// loadCatalog returns the active golden price list entries relevant to lines.
func (s *scheduleService) loadCatalog(ctx context.Context, lines []domain.EstimateLine) ([]domain.LaborCatalogEntry, error) {
	pl, err := s.repos.Catalog.GetActive(ctx, domain.PriceListKindGolden)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrNoActiveCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("loading active price list: %w", err)
	}
	categories, selectors := lineCodes(lines)
	entries, err := s.repos.Catalog.ListEntries(ctx, pl.ID, categories, selectors)
	if err != nil {
		return nil, fmt.Errorf("loading price list entries: %w", err)
	}
	return entries, nil
}

// Commit persists a freshly built schedule. Tasks are matched to stored ones
// by synthetic id: new tasks are created, tasks whose dates or duration
// moved are updated, and unchanged tasks are left alone. Every create and
// update is logged. All writes share one transaction.
func (s *scheduleService) Commit(ctx context.Context, req contract.CommitRequest) (result *contract.CommitResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "estimate_id": req.EstimateID, "actor_id": req.ActorID}
	defer func() {
		if result != nil {
			fields["task_count"] = len(result.ScheduledTasks)
			fields["change_count"] = len(result.Changes)
			fields["conflict_count"] = len(result.Conflicts)
		}
		observe(ctx, s.observer, "schedule.commit", startedAt, fields, &err)
	}()

	if err = contract.Validate(req); err != nil {
		return nil, err
	}

	preview, err := s.buildPreview(ctx, req.PreviewRequest)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	changes := []domain.ChangeLogEntry{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteScheduleTaskRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		existing, err := txTasks.ListByEstimate(ctx, preview.ProjectID, preview.EstimateID)
		if err != nil {
			return fmt.Errorf("loading persisted tasks: %w", err)
		}
		bySynthetic := make(map[string]domain.ScheduleTask, len(existing))
		for _, t := range existing {
			bySynthetic[t.SyntheticID] = t
		}

		for _, task := range preview.ScheduledTasks {
			entry := domain.ChangeLogEntry{
				ID:              uuid.New().String(),
				ProjectID:       preview.ProjectID,
				EstimateID:      preview.EstimateID,
				TaskSyntheticID: task.SyntheticID,
				NewStartDate:    task.StartDate,
				NewEndDate:      task.EndDate,
				NewDurationDays: task.DurationDays,
				ActorID:         req.ActorID,
				CreatedAt:       now,
			}

			prev, found := bySynthetic[task.SyntheticID]
			switch {
			case !found:
				row := &domain.ScheduleTask{
					ID:            uuid.New().String(),
					ProjectID:     preview.ProjectID,
					EstimateID:    preview.EstimateID,
					ScheduledTask: task,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := txTasks.Create(ctx, row); err != nil {
					return err
				}
				entry.ScheduleTaskID = row.ID
				entry.ChangeType = domain.ChangeTaskCreated

			case prev.SameTiming(task):
				continue

			default:
				row := prev
				row.ScheduledTask = task
				row.UpdatedAt = now
				if err := txTasks.UpdateTiming(ctx, &row); err != nil {
					return err
				}
				prevStart, prevEnd, prevDuration := prev.StartDate, prev.EndDate, prev.DurationDays
				entry.ScheduleTaskID = prev.ID
				entry.ChangeType = domain.ChangeTaskUpdated
				entry.PreviousStartDate = &prevStart
				entry.PreviousEndDate = &prevEnd
				entry.PreviousDurationDays = &prevDuration
			}

			if err := txChanges.Create(ctx, &entry); err != nil {
				return err
			}
			changes = append(changes, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("committing schedule: %w", err)
	}

	return &contract.CommitResult{
		ProjectID:      preview.ProjectID,
		EstimateID:     preview.EstimateID,
		ScheduledTasks: preview.ScheduledTasks,
		Changes:        changes,
		Conflicts:      preview.Conflicts,
	}, nil
}

func (s *scheduleService) Conflicts(ctx context.Context, req contract.PreviewRequest) (*contract.ConflictsResult, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}
	return &contract.ConflictsResult{
		ProjectID:  preview.ProjectID,
		EstimateID: preview.EstimateID,
		Conflicts:  preview.Conflicts,
	}, nil
}

func (s *scheduleService) Legend() contract.Legend {
	return scheduler.Conflicts()
}

func (s *scheduleService) ListTasks(ctx context.Context, req contract.TaskListRequest) ([]domain.ScheduleTask, error) {
	if err := contract.Validate(req); err != nil {
		return nil, err
	}
	if _, _, err := s.scope.estimate(ctx, req.CompanyID, req.ProjectID, req.EstimateID); err != nil {
		return nil, err
	}
	tasks, err := s.repos.Tasks.ListByEstimate(ctx, req.ProjectID, req.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule tasks: %w", err)
	}
	return tasks, nil
}

func (s *scheduleService) TasksForDate(ctx context.Context, req contract.TasksForDateRequest) ([]domain.ScheduleTask, error) {
	if err := contract.Validate(req); err != nil {
		return nil, err
	}
	day, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, contract.NewValidationError("Date", err.Error())
	}
	if _, err := s.scope.project(ctx, req.CompanyID, req.ProjectID); err != nil {
		return nil, err
	}
	tasks, err := s.repos.Tasks.ListOverlapping(ctx, req.ProjectID, day, day)
	if err != nil {
		return nil, fmt.Errorf("listing tasks for %s: %w", req.Date, err)
	}
	return tasks, nil
}

func (s *scheduleService) History(ctx context.Context, req contract.TaskListRequest) ([]domain.ChangeLogEntry, error) {
	if err := contract.Validate(req); err != nil {
		return nil, err
	}
	if _, _, err := s.scope.estimate(ctx, req.CompanyID, req.ProjectID, req.EstimateID); err != nil {
		return nil, err
	}
	entries, err := s.repos.Changes.ListLatest(ctx, req.ProjectID, req.EstimateID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing schedule history: %w", err)
	}
	return entries, nil
}
