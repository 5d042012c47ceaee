package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/crewplan/internal/domain"
)

const loadBarWidth = 8

// FormatDailySummary renders one row per day with a load gauge scaled to
// the busiest day in the range.
func FormatDailySummary(days []domain.DaySummary) string {
	if len(days) == 0 {
		return Dim("No days in range.") + "\n"
	}

	peak := 0
	for _, d := range days {
		peak = max(peak, d.TaskCount)
	}

	rows := make([][]string, len(days))
	for i, d := range days {
		date := WeekdayDate(d.Date)
		if d.TaskCount == 0 {
			rows[i] = []string{Dim(date), Dim("0"), Dim("--"), Dim("--"), Dim("idle")}
			continue
		}
		hours := d.TotalLaborHours
		rows[i] = []string{
			date,
			strconv.Itoa(d.TaskCount),
			FormatHours(&hours),
			RenderLoadBar(float64(d.TaskCount), float64(peak), loadBarWidth),
			tradeBreakdown(d.Trades),
		}
	}
	return RenderTable([]string{"DATE", "TASKS", "HOURS", "LOAD", "TRADES"}, rows, 1, 2)
}

func tradeBreakdown(trades []domain.TradeDaySummary) string {
	parts := make([]string, len(trades))
	for i, t := range trades {
		parts[i] = fmt.Sprintf("%s %d", t.Trade, t.TaskCount)
	}
	return strings.Join(parts, Dim(" · "))
}
