package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// BuildInput is everything the builder needs. WorkPackages must already be
// in canonical order (see SortWorkPackages); task ids are positions in it.
type BuildInput struct {
	EstimateID   string
	WorkPackages []domain.WorkPackage
	Mitigation   *domain.MitigationWindow
	ProjectStart time.Time
	Overrides    map[string]domain.TaskOverride
	Capacity     CapacityResolver
}

// BuildResult is a day-level schedule and the conflicts found building it.
type BuildResult struct {
	Tasks     []domain.ScheduledTask
	Conflicts []domain.ScheduleConflict
}

// MitigationTaskID is the synthetic id of an estimate's dry-out task.
func MitigationTaskID(estimateID string) string {
	return "mitigation-" + estimateID
}

// WorkPackageTaskID is the synthetic id of the work package at the given
// zero-based position.
func WorkPackageTaskID(index int) string {
	return fmt.Sprintf("wp-%d", index+1)
}

type roomTail struct {
	end    time.Time
	taskID string
}

// Build sequences work packages into tasks. Phases within a room run in
// order, each trade runs at most its capacity of crews at once, and rebuild
// work starts after the mitigation window. Build is pure and deterministic.
func Build(in BuildInput) BuildResult {
	var result BuildResult

	projectStart := calendar.DateOnly(in.ProjectStart)
	workStart := projectStart
	mitigationID := ""

	if in.Mitigation != nil {
		mitigationID = MitigationTaskID(in.EstimateID)
		mitigationEnd := calendar.AddWorkDuration(projectStart, in.Mitigation.DurationDays)
		result.Tasks = append(result.Tasks, domain.ScheduledTask{
			SyntheticID:    mitigationID,
			Kind:           domain.TaskMitigation,
			Trade:          TradeMitigation,
			PhaseCode:      PhaseMitigationWindow,
			PhaseLabel:     MitigationPhaseLabel,
			StartDate:      projectStart,
			EndDate:        mitigationEnd,
			DurationDays:   in.Mitigation.DurationDays,
			PredecessorIDs: []string{},
		})
		workStart = calendar.NextWorkday(mitigationEnd)
	}

	lastByRoom := make(map[string]roomTail)
	lanes := newLanesByTrade(in.Capacity)

	for i, wp := range in.WorkPackages {
		id := WorkPackageTaskID(i)
		override, hasOverride := in.Overrides[id]
		lock := domain.LockSoft
		if hasOverride && override.LockType == domain.LockHard {
			lock = domain.LockHard
		}

		start := workStart
		var requested *time.Time
		if hasOverride && override.StartDate != nil {
			req := calendar.DateOnly(*override.StartDate)
			requested = &req
			if lock == domain.LockHard || req.After(start) {
				start = req
			}
		}

		var reasons []domain.ConflictReason

		last, hasLast := lastByRoom[wp.Room]
		if hasLast && last.end.After(start) {
			if lock == domain.LockSoft {
				start = calendar.NextWorkday(last.end)
			}
			reasons = append(reasons, domain.ReasonRoomDependency)
		}

		predecessors := []string{}
		if mitigationID != "" {
			predecessors = append(predecessors, mitigationID)
			reasons = append(reasons, domain.ReasonMitigation)
		}
		if hasLast {
			predecessors = append(predecessors, last.taskID)
		}

		duration := wp.DurationDays
		if hasOverride && override.DurationDays != nil && *override.DurationDays > 0 {
			duration = *override.DurationDays
		}

		tradeLanes := lanes.get(wp.Trade)
		pushedByCapacity := false
		if lock == domain.LockSoft {
			for tradeLanes.freeLane(start) < 0 {
				start = calendar.NextWorkday(tradeLanes.earliestEnd())
				pushedByCapacity = true
			}
		}

		end := calendar.AddWorkDuration(start, duration)
		lastByRoom[wp.Room] = roomTail{end: end, taskID: id}

		lane, overbooked := tradeLanes.laneFor(start)
		if lock == domain.LockHard && overbooked {
			pushedByCapacity = true
		}
		tradeLanes.occupy(lane, end)

		if pushedByCapacity {
			reasons = append(reasons, domain.ReasonTradeCapacity)
		}

		if requested != nil {
			switch {
			case lock == domain.LockSoft && start.After(*requested):
				result.Conflicts = append(result.Conflicts,
					newConflict(id, domain.ConflictStartDelayed, *requested, start, reasons, wp))
			case lock == domain.LockHard && len(reasons) > 0:
				result.Conflicts = append(result.Conflicts,
					newConflict(id, domain.ConflictHardStartConstraint, *requested, start, reasons, wp))
			}
		}

		hours := wp.TotalLaborHours
		crew := wp.CrewSize
		result.Tasks = append(result.Tasks, domain.ScheduledTask{
			SyntheticID:     id,
			Kind:            domain.TaskWork,
			Room:            wp.Room,
			Trade:           wp.Trade,
			PhaseCode:       wp.PhaseCode,
			PhaseLabel:      wp.PhaseLabel,
			StartDate:       start,
			EndDate:         end,
			DurationDays:    duration,
			TotalLaborHours: &hours,
			CrewSize:        &crew,
			PredecessorIDs:  predecessors,
		})
	}

	return result
}

func newConflict(
	taskID string,
	typ domain.ConflictType,
	requested, scheduled time.Time,
	reasons []domain.ConflictReason,
	wp domain.WorkPackage,
) domain.ScheduleConflict {
	list := make([]domain.ConflictReason, len(reasons))
	copy(list, reasons)
	if len(list) == 0 {
		list = []domain.ConflictReason{domain.ReasonUnknown}
	}
	c := domain.ScheduleConflict{
		TaskID:         taskID,
		Type:           typ,
		RequestedStart: &requested,
		ScheduledStart: scheduled,
		Reasons:        list,
	}
	c.Message = FormatConflictMessage(c, wp.Room, wp.Trade)
	return c
}
