package domain

import "time"

// WorkPackage aggregates labor for one (room, trade, phase).
type WorkPackage struct {
	Room            string
	Trade           string
	PhaseCode       int
	PhaseLabel      string
	TotalLaborHours float64
	CrewSize        int
	DurationDays    float64
	LineCount       int
}

// MissingPriceItem is a (category, selector, activity) with no resolvable
// labor factor. LineCount is the number of estimate lines that hit it.
type MissingPriceItem struct {
	Category  string
	Selector  string
	Activity  string
	LineCount int
}

// MitigationWindow is the project-wide dry-out prerequisite.
type MitigationWindow struct {
	DurationDays       float64
	EquipmentLineCount int
}

// TaskOverride is a per-task request keyed by synthetic id. Nil fields
// mean "not supplied".
type TaskOverride struct {
	DurationDays *float64
	StartDate    *time.Time
	LockType     LockType
}

// ScheduledTask is one row of a generated schedule. Room is empty for the
// mitigation task; TotalLaborHours and CrewSize are nil for it.
type ScheduledTask struct {
	SyntheticID     string
	Kind            TaskKind
	Room            string
	Trade           string
	PhaseCode       int
	PhaseLabel      string
	StartDate       time.Time
	EndDate         time.Time
	DurationDays    float64
	TotalLaborHours *float64
	CrewSize        *int
	PredecessorIDs  []string
}

// SameTiming reports whether start, end and duration all match.
func (t ScheduledTask) SameTiming(o ScheduledTask) bool {
	return t.StartDate.Equal(o.StartDate) &&
		t.EndDate.Equal(o.EndDate) &&
		t.DurationDays == o.DurationDays
}

// ScheduleConflict explains why a requested start could not be honored.
type ScheduleConflict struct {
	TaskID         string
	Type           ConflictType
	RequestedStart *time.Time
	ScheduledStart time.Time
	Reasons        []ConflictReason
	Message        string
}

// ScheduleTask is a committed ScheduledTask scoped to a project estimate.
type ScheduleTask struct {
	ID         string
	ProjectID  string
	EstimateID string
	ScheduledTask
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChangeLogEntry is an append-only record of a committed task change.
// Previous* fields are nil for TASK_CREATED.
type ChangeLogEntry struct {
	ID                   string
	ProjectID            string
	EstimateID           string
	ScheduleTaskID       string
	TaskSyntheticID      string
	ChangeType           ChangeType
	PreviousStartDate    *time.Time
	PreviousEndDate      *time.Time
	PreviousDurationDays *float64
	NewStartDate         time.Time
	NewEndDate           time.Time
	NewDurationDays      float64
	ActorID              string
	CreatedAt            time.Time
}
