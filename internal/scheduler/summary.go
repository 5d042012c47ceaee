package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// Summarize slices persisted tasks into one DaySummary per calendar day of
// [from, to]. A reversed range is swapped. A task counts on every day from
// its start through its end date. Trade totals keep the order in which
// trades first appear in tasks.
func Summarize(tasks []domain.ScheduleTask, from, to time.Time) []domain.DaySummary {
	from, to = calendar.DateOnly(from), calendar.DateOnly(to)
	if to.Before(from) {
		from, to = to, from
	}

	var days []domain.DaySummary
	for day := from; !day.After(to); day = calendar.AddDays(day, 1) {
		summary := domain.DaySummary{Date: day, Trades: []domain.TradeDaySummary{}, Tasks: []domain.ScheduleTask{}}
		tradeIdx := make(map[string]int)

		for _, t := range tasks {
			if !activeOn(t, day) {
				continue
			}
			summary.Tasks = append(summary.Tasks, t)
			summary.TaskCount++

			trade := strings.TrimSpace(t.Trade)
			if trade == "" {
				trade = domain.UnknownTrade
			}
			i, ok := tradeIdx[trade]
			if !ok {
				i = len(summary.Trades)
				tradeIdx[trade] = i
				summary.Trades = append(summary.Trades, domain.TradeDaySummary{Trade: trade})
			}
			summary.Trades[i].TaskCount++
			if t.TotalLaborHours != nil {
				summary.Trades[i].TotalLaborHours += *t.TotalLaborHours
				summary.TotalLaborHours += *t.TotalLaborHours
			}
		}
		days = append(days, summary)
	}
	return days
}

func activeOn(t domain.ScheduleTask, day time.Time) bool {
	start, end := calendar.DateOnly(t.StartDate), calendar.DateOnly(t.EndDate)
	return !start.After(day) && !end.Before(day)
}
