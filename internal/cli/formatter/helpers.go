package formatter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// trimFloat formats f with at most two decimals and no trailing zeros.
func trimFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// FormatDays renders a working-day duration such as "1.5d".
func FormatDays(d float64) string {
	return trimFloat(d) + "d"
}

// FormatHours renders labor hours such as "7.5h". Nil renders as "--".
func FormatHours(h *float64) string {
	if h == nil {
		return "--"
	}
	return trimFloat(*h) + "h"
}

// DateSpan renders "2024-03-04" for single-day spans and
// "2024-03-04 → 2024-03-05" otherwise.
func DateSpan(start, end time.Time) string {
	s, e := calendar.FormatDate(start), calendar.FormatDate(end)
	if s == e {
		return s
	}
	return s + " → " + e
}

// WeekdayDate renders a date with its weekday, e.g. "Mon 2024-03-04".
func WeekdayDate(t time.Time) string {
	return t.Format("Mon") + " " + calendar.FormatDate(t)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Plural returns "n noun" with an "s" unless n is one.
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
