package scheduler

import (
	"strings"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// ReasonPhrase is the human wording of a conflict reason.
func ReasonPhrase(r domain.ConflictReason) string {
	switch r {
	case domain.ReasonRoomDependency:
		return "room dependency"
	case domain.ReasonTradeCapacity:
		return "trade capacity"
	case domain.ReasonMitigation:
		return "mitigation window"
	default:
		return "other constraints"
	}
}

// FormatConflictMessage renders the message for a conflict on a task in
// room (empty for project-wide tasks) run by trade.
func FormatConflictMessage(c domain.ScheduleConflict, room, trade string) string {
	var location []string
	if room != "" {
		location = append(location, room)
	}
	if trade != "" {
		location = append(location, trade)
	}
	where := "Task"
	if len(location) > 0 {
		where = strings.Join(location, " · ")
	}

	requested := ""
	if c.RequestedStart != nil {
		requested = calendar.FormatDate(*c.RequestedStart)
	}

	var b strings.Builder
	b.WriteString(where)
	if c.Type == domain.ConflictStartDelayed {
		b.WriteString(" delayed from " + requested + " to " + calendar.FormatDate(c.ScheduledStart))
	} else {
		b.WriteString(" hard-locked on " + requested + " conflicts with schedule")
	}

	if len(c.Reasons) > 0 {
		phrases := make([]string, len(c.Reasons))
		for i, r := range c.Reasons {
			phrases[i] = ReasonPhrase(r)
		}
		b.WriteString(" due to " + strings.Join(phrases, ", "))
	}
	return b.String()
}

// ConflictTypeInfo describes a conflict type for legends.
type ConflictTypeInfo struct {
	Code        domain.ConflictType
	Description string
	Severity    string
}

// ConflictReasonInfo describes a conflict reason for legends.
type ConflictReasonInfo struct {
	Code        domain.ConflictReason
	Description string
}

// ConflictCatalog is the fixed legend of conflict types and reasons.
type ConflictCatalog struct {
	Types   []ConflictTypeInfo
	Reasons []ConflictReasonInfo
}

// Conflicts returns the conflict legend.
func Conflicts() ConflictCatalog {
	return ConflictCatalog{
		Types: []ConflictTypeInfo{
			{
				Code:        domain.ConflictStartDelayed,
				Description: "Soft-locked task was pushed later than its requested start date to satisfy dependencies or trade capacity.",
				Severity:    "warning",
			},
			{
				Code:        domain.ConflictHardStartConstraint,
				Description: "Hard-locked task kept its requested start date but conflicts with room dependencies, mitigation, or trade capacity.",
				Severity:    "error",
			},
		},
		Reasons: []ConflictReasonInfo{
			{domain.ReasonRoomDependency, "Previous phase in the same room was not completed before this task's start."},
			{domain.ReasonTradeCapacity, "Scheduled crews for this trade exceed the configured concurrent capacity."},
			{domain.ReasonMitigation, "Rebuild work cannot start until mitigation / dry-out completes."},
			{domain.ReasonUnknown, "The scheduler detected a constraint that could not be classified more specifically."},
		},
	}
}
