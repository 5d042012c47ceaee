package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/scheduler"
)

type summaryService struct {
	scope        scopeLoader
	tasks        repository.ScheduleTaskRepo
	maxRangeDays int
	observer     UseCaseObserver
}

// NewSummaryService reports per-day trade load over persisted tasks.
// maxRangeDays bounds request spans; non-positive means the default.
func NewSummaryService(
	projects repository.ProjectRepo,
	tasks repository.ScheduleTaskRepo,
	maxRangeDays int,
	observers ...UseCaseObserver,
) SummaryService {
	if maxRangeDays <= 0 {
		maxRangeDays = contract.DefaultMaxSummaryRangeDays
	}
	return &summaryService{
		scope:        scopeLoader{projects: projects},
		tasks:        tasks,
		maxRangeDays: maxRangeDays,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *summaryService) DailySummary(ctx context.Context, req contract.DailySummaryRequest) (days []domain.DaySummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "from": req.From, "to": req.To}
	defer func() {
		fields["day_count"] = len(days)
		observe(ctx, s.observer, "schedule.daily_summary", startedAt, fields, &err)
	}()

	from, to, err := req.Range(s.maxRangeDays)
	if err != nil {
		return nil, err
	}
	if _, err = s.scope.project(ctx, req.CompanyID, req.ProjectID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListOverlapping(ctx, req.ProjectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading tasks for summary: %w", err)
	}
	return scheduler.Summarize(tasks, from, to), nil
}
