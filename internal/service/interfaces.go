package service

import (
	"context"
	"io"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/importer"
)

type ScheduleService interface {
	Preview(ctx context.Context, req contract.PreviewRequest) (*contract.SchedulePreview, error)
	Commit(ctx context.Context, req contract.CommitRequest) (*contract.CommitResult, error)
	Conflicts(ctx context.Context, req contract.PreviewRequest) (*contract.ConflictsResult, error)
	Legend() contract.Legend
	ListTasks(ctx context.Context, req contract.TaskListRequest) ([]domain.ScheduleTask, error)
	TasksForDate(ctx context.Context, req contract.TasksForDateRequest) ([]domain.ScheduleTask, error)
	History(ctx context.Context, req contract.TaskListRequest) ([]domain.ChangeLogEntry, error)
}

type SummaryService interface {
	DailySummary(ctx context.Context, req contract.DailySummaryRequest) ([]domain.DaySummary, error)
}

type CapacityService interface {
	List(ctx context.Context, req contract.CapacityListRequest) ([]domain.TradeCapacity, error)
	Upsert(ctx context.Context, req contract.CapacityUpsertRequest) (*domain.TradeCapacity, error)
}

// ImportResult holds the outcome of a fixture import.
type ImportResult struct {
	Project       *domain.Project
	Estimate      *domain.Estimate
	LineCount     int
	PriceList     *domain.PriceList
	EntryCount    int
	CapacityCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// ExportResult counts the rows written to each sheet.
type ExportResult struct {
	TaskRows    int `json:"taskRows"`
	HistoryRows int `json:"historyRows"`
	SummaryRows int `json:"summaryRows"`
}

type ExportService interface {
	Export(ctx context.Context, req contract.TaskListRequest, w io.Writer) (*ExportResult, error)
}
