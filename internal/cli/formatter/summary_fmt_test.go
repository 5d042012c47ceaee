package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDailySummary(t *testing.T) {
	days := []domain.DaySummary{
		{Date: day(4), TaskCount: 2, TotalLaborHours: 55.5, Trades: []domain.TradeDaySummary{
			{Trade: "Drywall", TaskCount: 1, TotalLaborHours: 48},
			{Trade: "Paint", TaskCount: 1, TotalLaborHours: 7.5},
		}},
		{Date: day(5), TaskCount: 1, TotalLaborHours: 48, Trades: []domain.TradeDaySummary{
			{Trade: "Drywall", TaskCount: 1, TotalLaborHours: 48},
		}},
		{Date: day(9)},
	}

	out := plain(FormatDailySummary(days))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[2], "Mon 2024-03-04")
	assert.Contains(t, lines[2], "55.5h")
	assert.Contains(t, lines[2], "[████████] 2/2")
	assert.Contains(t, lines[2], "Drywall 1 · Paint 1")
	assert.Contains(t, lines[3], "[████░░░░] 1/2")
	assert.Contains(t, lines[4], "idle")
}

func TestFormatDailySummary_Empty(t *testing.T) {
	assert.Equal(t, "No days in range.\n", plain(FormatDailySummary(nil)))
}
