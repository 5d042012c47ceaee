package contract

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// JSON views. Dates serialize as YYYY-MM-DD; timestamps as RFC3339.

type WorkPackageView struct {
	Room            string  `json:"room"`
	Trade           string  `json:"trade"`
	PhaseCode       int     `json:"phaseCode"`
	PhaseLabel      string  `json:"phaseLabel"`
	TotalLaborHours float64 `json:"totalLaborHours"`
	CrewSize        int     `json:"crewSize"`
	DurationDays    float64 `json:"durationDays"`
	LineCount       int     `json:"lineCount"`
}

type MissingPriceItemView struct {
	Category  string `json:"category"`
	Selector  string `json:"selector"`
	Activity  string `json:"activity"`
	LineCount int    `json:"lineCount"`
}

type MitigationWindowView struct {
	DurationDays       float64 `json:"durationDays"`
	EquipmentLineCount int     `json:"equipmentLineCount"`
}

type TaskView struct {
	ID              string   `json:"id"`
	Kind            string   `json:"kind"`
	Room            *string  `json:"room"`
	Trade           string   `json:"trade"`
	PhaseCode       int      `json:"phaseCode"`
	PhaseLabel      string   `json:"phaseLabel"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	DurationDays    float64  `json:"durationDays"`
	TotalLaborHours *float64 `json:"totalLaborHours"`
	CrewSize        *int     `json:"crewSize"`
	PredecessorIDs  []string `json:"predecessorIds"`
}

type ConflictView struct {
	TaskID         string   `json:"taskId"`
	Type           string   `json:"type"`
	RequestedStart *string  `json:"requestedStart"`
	ScheduledStart string   `json:"scheduledStart"`
	Reasons        []string `json:"reasons"`
	Message        string   `json:"message"`
}

type ChangeView struct {
	ID                   string   `json:"id"`
	ScheduleTaskID       string   `json:"scheduleTaskId"`
	TaskSyntheticID      string   `json:"taskSyntheticId"`
	ChangeType           string   `json:"changeType"`
	PreviousStartDate    *string  `json:"previousStartDate"`
	PreviousEndDate      *string  `json:"previousEndDate"`
	PreviousDurationDays *float64 `json:"previousDurationDays"`
	NewStartDate         string   `json:"newStartDate"`
	NewEndDate           string   `json:"newEndDate"`
	NewDurationDays      float64  `json:"newDurationDays"`
	ActorID              string   `json:"actorId"`
	CreatedAt            string   `json:"createdAt"`
}

type PreviewView struct {
	ProjectID         string                 `json:"projectId"`
	EstimateID        string                 `json:"estimateId"`
	ProjectStart      string                 `json:"projectStart"`
	TotalLaborHours   float64                `json:"totalLaborHours"`
	WorkPackages      []WorkPackageView      `json:"workPackages"`
	MissingPriceItems []MissingPriceItemView `json:"missingPriceItems"`
	MitigationWindow  *MitigationWindowView  `json:"mitigationWindow"`
	ScheduledTasks    []TaskView             `json:"scheduledTasks"`
	Conflicts         []ConflictView         `json:"conflicts"`
}

type CommitView struct {
	ProjectID      string         `json:"projectId"`
	EstimateID     string         `json:"estimateId"`
	ScheduledTasks []TaskView     `json:"scheduledTasks"`
	Changes        []ChangeView   `json:"changes"`
	Conflicts      []ConflictView `json:"conflicts"`
}

type ConflictsView struct {
	ProjectID  string         `json:"projectId"`
	EstimateID string         `json:"estimateId"`
	Conflicts  []ConflictView `json:"conflicts"`
}

type TradeDaySummaryView struct {
	Trade           string  `json:"trade"`
	TaskCount       int     `json:"taskCount"`
	TotalLaborHours float64 `json:"totalLaborHours"`
}

type DaySummaryView struct {
	Date            string                `json:"date"`
	TaskCount       int                   `json:"taskCount"`
	TotalLaborHours float64               `json:"totalLaborHours"`
	Trades          []TradeDaySummaryView `json:"trades"`
	Tasks           []TaskView            `json:"tasks"`
}

type CapacityView struct {
	ID            string `json:"id"`
	Trade         string `json:"trade"`
	MaxConcurrent int    `json:"maxConcurrent"`
	Scope         string `json:"scope"`
	ProjectID     string `json:"projectId,omitempty"`
	UpdatedAt     string `json:"updatedAt"`
}

type LegendTypeView struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type LegendReasonView struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type LegendView struct {
	Types   []LegendTypeView   `json:"types"`
	Reasons []LegendReasonView `json:"reasons"`
}

func NewPreviewView(p SchedulePreview) PreviewView {
	v := PreviewView{
		ProjectID:         p.ProjectID,
		EstimateID:        p.EstimateID,
		ProjectStart:      calendar.FormatDate(p.ProjectStart),
		TotalLaborHours:   p.TotalLaborHours,
		WorkPackages:      make([]WorkPackageView, len(p.WorkPackages)),
		MissingPriceItems: make([]MissingPriceItemView, len(p.MissingPriceItems)),
		ScheduledTasks:    NewTaskViews(p.ScheduledTasks),
		Conflicts:         NewConflictViews(p.Conflicts),
	}
	for i, wp := range p.WorkPackages {
		v.WorkPackages[i] = WorkPackageView(wp)
	}
	for i, m := range p.MissingPriceItems {
		v.MissingPriceItems[i] = MissingPriceItemView(m)
	}
	if p.MitigationWindow != nil {
		v.MitigationWindow = &MitigationWindowView{
			DurationDays:       p.MitigationWindow.DurationDays,
			EquipmentLineCount: p.MitigationWindow.EquipmentLineCount,
		}
	}
	return v
}

func NewCommitView(r CommitResult) CommitView {
	v := CommitView{
		ProjectID:      r.ProjectID,
		EstimateID:     r.EstimateID,
		ScheduledTasks: NewTaskViews(r.ScheduledTasks),
		Changes:        make([]ChangeView, len(r.Changes)),
		Conflicts:      NewConflictViews(r.Conflicts),
	}
	for i, c := range r.Changes {
		v.Changes[i] = NewChangeView(c)
	}
	return v
}

func NewConflictsView(r ConflictsResult) ConflictsView {
	return ConflictsView{ProjectID: r.ProjectID, EstimateID: r.EstimateID, Conflicts: NewConflictViews(r.Conflicts)}
}

func NewTaskViews(tasks []domain.ScheduledTask) []TaskView {
	out := make([]TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = NewTaskView(t)
	}
	return out
}

func NewTaskView(t domain.ScheduledTask) TaskView {
	v := TaskView{
		ID:              t.SyntheticID,
		Kind:            string(t.Kind),
		Trade:           t.Trade,
		PhaseCode:       t.PhaseCode,
		PhaseLabel:      t.PhaseLabel,
		StartDate:       calendar.FormatDate(t.StartDate),
		EndDate:         calendar.FormatDate(t.EndDate),
		DurationDays:    t.DurationDays,
		TotalLaborHours: t.TotalLaborHours,
		CrewSize:        t.CrewSize,
		PredecessorIDs:  t.PredecessorIDs,
	}
	if t.Room != "" {
		room := t.Room
		v.Room = &room
	}
	if v.PredecessorIDs == nil {
		v.PredecessorIDs = []string{}
	}
	return v
}

// NewPersistedTaskViews renders committed tasks.
func NewPersistedTaskViews(tasks []domain.ScheduleTask) []TaskView {
	out := make([]TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = NewTaskView(t.ScheduledTask)
	}
	return out
}

func NewConflictViews(conflicts []domain.ScheduleConflict) []ConflictView {
	out := make([]ConflictView, len(conflicts))
	for i, c := range conflicts {
		v := ConflictView{
			TaskID:         c.TaskID,
			Type:           string(c.Type),
			ScheduledStart: calendar.FormatDate(c.ScheduledStart),
			Reasons:        make([]string, len(c.Reasons)),
			Message:        c.Message,
		}
		v.RequestedStart = formatOptionalDate(c.RequestedStart)
		for j, r := range c.Reasons {
			v.Reasons[j] = string(r)
		}
		out[i] = v
	}
	return out
}

func NewChangeView(c domain.ChangeLogEntry) ChangeView {
	return ChangeView{
		ID:                   c.ID,
		ScheduleTaskID:       c.ScheduleTaskID,
		TaskSyntheticID:      c.TaskSyntheticID,
		ChangeType:           string(c.ChangeType),
		PreviousStartDate:    formatOptionalDate(c.PreviousStartDate),
		PreviousEndDate:      formatOptionalDate(c.PreviousEndDate),
		PreviousDurationDays: c.PreviousDurationDays,
		NewStartDate:         calendar.FormatDate(c.NewStartDate),
		NewEndDate:           calendar.FormatDate(c.NewEndDate),
		NewDurationDays:      c.NewDurationDays,
		ActorID:              c.ActorID,
		CreatedAt:            c.CreatedAt.UTC().Format(timestampLayout),
	}
}

func NewChangeViews(entries []domain.ChangeLogEntry) []ChangeView {
	out := make([]ChangeView, len(entries))
	for i, e := range entries {
		out[i] = NewChangeView(e)
	}
	return out
}

func NewDaySummaryViews(days []domain.DaySummary) []DaySummaryView {
	out := make([]DaySummaryView, len(days))
	for i, d := range days {
		v := DaySummaryView{
			Date:            calendar.FormatDate(d.Date),
			TaskCount:       d.TaskCount,
			TotalLaborHours: d.TotalLaborHours,
			Trades:          make([]TradeDaySummaryView, len(d.Trades)),
			Tasks:           NewPersistedTaskViews(d.Tasks),
		}
		for j, tr := range d.Trades {
			v.Trades[j] = TradeDaySummaryView(tr)
		}
		out[i] = v
	}
	return out
}

func NewCapacityViews(rows []domain.TradeCapacity) []CapacityView {
	out := make([]CapacityView, len(rows))
	for i, r := range rows {
		v := CapacityView{
			ID:            r.ID,
			Trade:         r.Trade,
			MaxConcurrent: r.MaxConcurrent,
			Scope:         string(r.Scope()),
			UpdatedAt:     r.UpdatedAt.UTC().Format(timestampLayout),
		}
		if r.ProjectID != nil {
			v.ProjectID = *r.ProjectID
		}
		out[i] = v
	}
	return out
}

func NewLegendView(l Legend) LegendView {
	v := LegendView{
		Types:   make([]LegendTypeView, len(l.Types)),
		Reasons: make([]LegendReasonView, len(l.Reasons)),
	}
	for i, t := range l.Types {
		v.Types[i] = LegendTypeView{Code: string(t.Code), Description: t.Description, Severity: t.Severity}
	}
	for i, r := range l.Reasons {
		v.Reasons[i] = LegendReasonView{Code: string(r.Code), Description: r.Description}
	}
	return v
}

const timestampLayout = time.RFC3339

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := calendar.FormatDate(*t)
	return &s
}
