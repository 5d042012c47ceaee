package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const projectWideRoom = "Project-wide"

// FormatPreview renders a schedule preview: a summary box, the task table,
// the room sequence tree, then conflicts and unpriced items when present.
func FormatPreview(p *contract.SchedulePreview) string {
	var b strings.Builder

	b.WriteString(RenderBox("Schedule preview", previewSummary(p)))
	b.WriteString("\n\n")

	if len(p.ScheduledTasks) == 0 {
		b.WriteString(Dim("No schedulable work in this estimate."))
		b.WriteString("\n")
	} else {
		b.WriteString(Header("Tasks"))
		b.WriteString("\n")
		b.WriteString(FormatTaskTable(p.ScheduledTasks))
		b.WriteString("\n")
		b.WriteString(Header("By room"))
		b.WriteString("\n")
		b.WriteString(FormatRoomTree(p.ScheduledTasks))
	}

	if len(p.Conflicts) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Conflicts"))
		b.WriteString("\n")
		b.WriteString(FormatConflicts(p.Conflicts))
	}

	if len(p.MissingPriceItems) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Missing labor prices"))
		b.WriteString("\n")
		rows := make([][]string, len(p.MissingPriceItems))
		for i, m := range p.MissingPriceItems {
			rows[i] = []string{m.Category, m.Selector, m.Activity, strconv.Itoa(m.LineCount)}
		}
		b.WriteString(RenderTable([]string{"CATEGORY", "SELECTOR", "ACTIVITY", "LINES"}, rows, 3))
	}
	return b.String()
}

func previewSummary(p *contract.SchedulePreview) string {
	lines := []string{
		fmt.Sprintf("%s %s", Dim("Start:     "), Bold(WeekdayDate(p.ProjectStart))),
		fmt.Sprintf("%s %sh across %s", Dim("Labor:     "),
			trimFloat(p.TotalLaborHours), Plural(len(p.WorkPackages), "work package")),
	}
	if end, ok := scheduleEnd(p.ScheduledTasks); ok {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("Finish:    "), WeekdayDate(end)))
	}
	if m := p.MitigationWindow; m != nil {
		lines = append(lines, fmt.Sprintf("%s %s dry-out from %s",
			Dim("Mitigation:"), FormatDays(m.DurationDays), Plural(m.EquipmentLineCount, "equipment line")))
	}
	if n := p.MissingLineCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("%s %s",
			Dim("Unpriced:  "), StyleYellow.Render(Plural(n, "line")+" skipped")))
	}
	if n := len(p.Conflicts); n > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("Conflicts: "), StyleRed.Render(strconv.Itoa(n))))
	}
	return strings.Join(lines, "\n")
}

func scheduleEnd(tasks []domain.ScheduledTask) (end time.Time, ok bool) {
	for _, t := range tasks {
		if !ok || t.EndDate.After(end) {
			end, ok = t.EndDate, true
		}
	}
	return end, ok
}

// FormatTaskTable renders scheduled tasks in the order given.
func FormatTaskTable(tasks []domain.ScheduledTask) string {
	headers := []string{"ID", "ROOM", "TRADE", "PHASE", "START", "END", "DAYS", "HOURS", "CREW", "AFTER"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		room := t.Room
		if room == "" {
			room = Dim("--")
		}
		crew := "--"
		if t.CrewSize != nil {
			crew = strconv.Itoa(*t.CrewSize)
		}
		after := Dim("--")
		if len(t.PredecessorIDs) > 0 {
			after = strings.Join(t.PredecessorIDs, ", ")
		}
		id := t.SyntheticID
		if badge := KindBadge(t.Kind); badge != "" {
			id = badge
		}
		rows = append(rows, []string{
			id, room, t.Trade, t.PhaseLabel,
			calendar.FormatDate(t.StartDate), calendar.FormatDate(t.EndDate),
			FormatDays(t.DurationDays), FormatHours(t.TotalLaborHours), crew, after,
		})
	}
	return RenderTable(headers, rows, 6, 7, 8)
}

// FormatPersistedTasks renders committed tasks like FormatTaskTable.
func FormatPersistedTasks(tasks []domain.ScheduleTask) string {
	if len(tasks) == 0 {
		return Dim("No committed tasks.") + "\n"
	}
	plain := make([]domain.ScheduledTask, len(tasks))
	for i, t := range tasks {
		plain[i] = t.ScheduledTask
	}
	return FormatTaskTable(plain)
}

// FormatRoomTree groups tasks by room in first-seen order, showing each
// room's phase sequence. Tasks without a room are listed as project-wide.
func FormatRoomTree(tasks []domain.ScheduledTask) string {
	var rooms []string
	byRoom := make(map[string][]domain.ScheduledTask)
	for _, t := range tasks {
		room := t.Room
		if room == "" {
			room = projectWideRoom
		}
		if _, ok := byRoom[room]; !ok {
			rooms = append(rooms, room)
		}
		byRoom[room] = append(byRoom[room], t)
	}

	var items []TreeItem
	for _, room := range rooms {
		items = append(items, TreeItem{Title: Bold(room)})
		list := byRoom[room]
		for i, t := range list {
			items = append(items, TreeItem{
				Title:  t.PhaseLabel + Dim(" · "+t.Trade),
				Level:  1,
				IsLast: i == len(list)-1,
				Marker: KindBadge(t.Kind),
				Detail: DateSpan(t.StartDate, t.EndDate),
			})
		}
	}
	return RenderTree(items)
}

// FormatConflicts renders conflicts with their messages.
func FormatConflicts(conflicts []domain.ScheduleConflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("No conflicts.") + "\n"
	}
	rows := make([][]string, len(conflicts))
	for i, c := range conflicts {
		requested := Dim("--")
		if c.RequestedStart != nil {
			requested = calendar.FormatDate(*c.RequestedStart)
		}
		rows[i] = []string{
			c.TaskID, ConflictIndicator(c.Type), requested,
			calendar.FormatDate(c.ScheduledStart), c.Message,
		}
	}
	return RenderTable([]string{"TASK", "TYPE", "REQUESTED", "SCHEDULED", "DETAIL"}, rows)
}

// FormatLegend renders the conflict type and reason catalog.
func FormatLegend(l contract.Legend) string {
	var b strings.Builder
	b.WriteString(Header("Conflict types"))
	b.WriteString("\n")
	for _, t := range l.Types {
		fmt.Fprintf(&b, "%s  %s\n    %s\n",
			SeverityStyle(t.Severity).Render(string(t.Code)), Dim("("+t.Severity+")"), t.Description)
	}
	b.WriteString("\n")
	b.WriteString(Header("Reasons"))
	b.WriteString("\n")
	for _, r := range l.Reasons {
		fmt.Fprintf(&b, "%s\n    %s\n", Bold(string(r.Code)), r.Description)
	}
	return b.String()
}

// FormatCommit summarizes a commit and lists the changes it wrote.
func FormatCommit(r *contract.CommitResult) string {
	created, moved := 0, 0
	for _, c := range r.Changes {
		switch c.ChangeType {
		case domain.ChangeTaskCreated:
			created++
		case domain.ChangeTaskUpdated:
			moved++
		}
	}
	unchanged := len(r.ScheduledTasks) - created - moved

	var b strings.Builder
	fmt.Fprintf(&b, "Committed %s: %s, %s, %s\n",
		Plural(len(r.ScheduledTasks), "task"),
		StyleGreen.Render(fmt.Sprintf("%d created", created)),
		StyleBlue.Render(fmt.Sprintf("%d moved", moved)),
		Dim(fmt.Sprintf("%d unchanged", unchanged)))
	if len(r.Changes) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatHistory(r.Changes))
	}
	if len(r.Conflicts) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%s remain; run `schedule conflicts` for details.",
			Plural(len(r.Conflicts), "conflict"))))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHistory renders change log entries in the order given.
func FormatHistory(entries []domain.ChangeLogEntry) string {
	if len(entries) == 0 {
		return Dim("No schedule changes recorded.") + "\n"
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		from := Dim("--")
		if e.PreviousStartDate != nil && e.PreviousEndDate != nil {
			from = DateSpan(*e.PreviousStartDate, *e.PreviousEndDate)
		}
		rows[i] = []string{
			e.CreatedAt.UTC().Format("2006-01-02 15:04"),
			e.TaskSyntheticID,
			ChangePill(e.ChangeType),
			from,
			DateSpan(e.NewStartDate, e.NewEndDate),
			FormatDays(e.NewDurationDays),
			e.ActorID,
		}
	}
	return RenderTable([]string{"WHEN", "TASK", "CHANGE", "FROM", "TO", "DAYS", "ACTOR"}, rows, 5)
}
