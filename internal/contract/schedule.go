package contract

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/scheduler"
)

// TaskOverrideInput is a caller-supplied per-task override. Dates are
// YYYY-MM-DD strings; anything unparseable is treated as not supplied.
type TaskOverrideInput struct {
	DurationDays *float64 `json:"durationDays,omitempty" yaml:"durationDays,omitempty"`
	StartDate    string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	LockType     string   `json:"lockType,omitempty" yaml:"lockType,omitempty"`
}

// PreviewRequest asks for a schedule preview of one estimate. CompanyID is
// optional; when set, the project must belong to that company.
type PreviewRequest struct {
	CompanyID         string
	ProjectID         string `validate:"required"`
	EstimateID        string `validate:"required"`
	StartDateOverride string
	TaskOverrides     map[string]TaskOverrideInput
}

// StartDate returns the parsed start-date override, or nil when it is empty
// or unparseable.
func (r PreviewRequest) StartDate() *time.Time {
	return parseOptionalDate(r.StartDateOverride)
}

// Overrides converts the raw overrides into builder input. Unparseable start
// dates are dropped; unknown lock types become SOFT.
func (r PreviewRequest) Overrides() map[string]domain.TaskOverride {
	out := make(map[string]domain.TaskOverride, len(r.TaskOverrides))
	for id, in := range r.TaskOverrides {
		out[id] = domain.TaskOverride{
			DurationDays: in.DurationDays,
			StartDate:    parseOptionalDate(in.StartDate),
			LockType:     domain.ParseLockType(in.LockType),
		}
	}
	return out
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := calendar.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// CommitRequest is a preview request plus the actor recorded in the change log.
type CommitRequest struct {
	PreviewRequest
	ActorID string `validate:"required"`
}

// SchedulePreview is the full output of a preview run.
type SchedulePreview struct {
	ProjectID         string
	EstimateID        string
	ProjectStart      time.Time
	WorkPackages      []domain.WorkPackage
	MissingPriceItems []domain.MissingPriceItem
	MitigationWindow  *domain.MitigationWindow
	ScheduledTasks    []domain.ScheduledTask
	Conflicts         []domain.ScheduleConflict
	TotalLaborHours   float64
}

// MissingLineCount sums the lines excluded for lack of a labor factor.
func (p SchedulePreview) MissingLineCount() int {
	n := 0
	for _, m := range p.MissingPriceItems {
		n += m.LineCount
	}
	return n
}

// CommitResult is the output of a commit run. Changes holds only the change
// log entries written by this call.
type CommitResult struct {
	ProjectID      string
	EstimateID     string
	ScheduledTasks []domain.ScheduledTask
	Changes        []domain.ChangeLogEntry
	Conflicts      []domain.ScheduleConflict
}

// ConflictsResult is the conflicts-only view of a preview.
type ConflictsResult struct {
	ProjectID  string
	EstimateID string
	Conflicts  []domain.ScheduleConflict
}

// TaskListRequest scopes a read of persisted tasks to one estimate.
type TaskListRequest struct {
	CompanyID  string
	ProjectID  string `validate:"required"`
	EstimateID string `validate:"required"`
}

// TasksForDateRequest lists a project's persisted tasks active on Date.
type TasksForDateRequest struct {
	CompanyID string
	ProjectID string `validate:"required"`
	Date      string `validate:"required"`
}

// Legend is the static conflict catalog.
type Legend = scheduler.ConflictCatalog
