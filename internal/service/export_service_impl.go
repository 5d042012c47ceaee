package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/scheduler"
	"github.com/xuri/excelize/v2"
)

// Sheet names of an exported workbook.
const (
	SheetTasks   = "Tasks"
	SheetHistory = "History"
	SheetSummary = "Daily Summary"
)

type exportService struct {
	scope        scopeLoader
	tasks        repository.ScheduleTaskRepo
	changes      repository.ChangeLogRepo
	historyLimit int
	observer     UseCaseObserver
}

func NewExportService(repos ScheduleRepos, historyLimit int, observers ...UseCaseObserver) ExportService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &exportService{
		scope:        scopeLoader{projects: repos.Projects, estimates: repos.Estimates},
		tasks:        repos.Tasks,
		changes:      repos.Changes,
		historyLimit: historyLimit,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Export writes the committed schedule of an estimate as an xlsx workbook
// with one sheet for tasks, one for change history and one for the daily
// summary across the schedule's span.
func (s *exportService) Export(ctx context.Context, req contract.TaskListRequest, w io.Writer) (result *ExportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "estimate_id": req.EstimateID}
	defer func() {
		if result != nil {
			fields["task_rows"] = result.TaskRows
			fields["history_rows"] = result.HistoryRows
			fields["summary_rows"] = result.SummaryRows
		}
		observe(ctx, s.observer, "schedule.export", startedAt, fields, &err)
	}()

	if err = contract.Validate(req); err != nil {
		return nil, err
	}
	if _, _, err = s.scope.estimate(ctx, req.CompanyID, req.ProjectID, req.EstimateID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByEstimate(ctx, req.ProjectID, req.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule tasks: %w", err)
	}
	history, err := s.changes.ListLatest(ctx, req.ProjectID, req.EstimateID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing schedule history: %w", err)
	}
	var days []domain.DaySummary
	if from, to, ok := scheduleSpan(tasks); ok {
		days = scheduler.Summarize(tasks, from, to)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", SheetTasks); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetHistory, SheetSummary} {
		if _, err = f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	result = &ExportResult{}
	if err = writeRows(f, SheetTasks, taskRows(tasks)); err != nil {
		return nil, err
	}
	result.TaskRows = len(tasks)
	if err = writeRows(f, SheetHistory, historyRows(history)); err != nil {
		return nil, err
	}
	result.HistoryRows = len(history)
	summary := summaryRows(days)
	if err = writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}
	result.SummaryRows = len(summary) - 1

	if err = f.Write(w); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return result, nil
}

// scheduleSpan returns the earliest start and latest end of tasks.
func scheduleSpan(tasks []domain.ScheduleTask) (time.Time, time.Time, bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	from, to := tasks[0].StartDate, tasks[0].EndDate
	for _, t := range tasks[1:] {
		if t.StartDate.Before(from) {
			from = t.StartDate
		}
		if t.EndDate.After(to) {
			to = t.EndDate
		}
	}
	return from, to, true
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func taskRows(tasks []domain.ScheduleTask) [][]any {
	rows := [][]any{{"Task", "Kind", "Room", "Trade", "Phase", "Start", "End", "Duration (days)", "Labor hours", "Crew"}}
	for _, t := range tasks {
		var hours, crew any
		if t.TotalLaborHours != nil {
			hours = *t.TotalLaborHours
		}
		if t.CrewSize != nil {
			crew = *t.CrewSize
		}
		rows = append(rows, []any{
			t.SyntheticID, string(t.Kind), t.Room, t.Trade, t.PhaseLabel,
			calendar.FormatDate(t.StartDate), calendar.FormatDate(t.EndDate),
			t.DurationDays, hours, crew,
		})
	}
	return rows
}

func historyRows(entries []domain.ChangeLogEntry) [][]any {
	rows := [][]any{{"When", "Task", "Change", "Previous start", "Previous end", "New start", "New end", "New duration", "Actor"}}
	for _, e := range entries {
		var prevStart, prevEnd any
		if e.PreviousStartDate != nil {
			prevStart = calendar.FormatDate(*e.PreviousStartDate)
		}
		if e.PreviousEndDate != nil {
			prevEnd = calendar.FormatDate(*e.PreviousEndDate)
		}
		rows = append(rows, []any{
			e.CreatedAt.UTC().Format(time.RFC3339), e.TaskSyntheticID, string(e.ChangeType),
			prevStart, prevEnd,
			calendar.FormatDate(e.NewStartDate), calendar.FormatDate(e.NewEndDate), e.NewDurationDays,
			e.ActorID,
		})
	}
	return rows
}

// summaryRows flattens day summaries to one row per (day, trade). Days with
// no work get a single row with an empty trade.
func summaryRows(days []domain.DaySummary) [][]any {
	rows := [][]any{{"Date", "Trade", "Tasks", "Labor hours"}}
	for _, d := range days {
		date := calendar.FormatDate(d.Date)
		if len(d.Trades) == 0 {
			rows = append(rows, []any{date, "", 0, 0.0})
			continue
		}
		for _, tr := range d.Trades {
			rows = append(rows, []any{date, tr.Trade, tr.TaskCount, tr.TotalLaborHours})
		}
	}
	return rows
}
