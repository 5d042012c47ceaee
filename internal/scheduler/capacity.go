package scheduler

import (
	"strings"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// CapacityTable resolves trade capacity from configured rows. A
// project-scoped row beats a company-wide row for the same trade; trades
// with no row fall back to DefaultCapacity.
type CapacityTable struct {
	byTrade map[string]int
}

// NewCapacityTable builds a table from rows. Trade names match
// case-insensitively.
func NewCapacityTable(rows []domain.TradeCapacity) *CapacityTable {
	t := &CapacityTable{byTrade: make(map[string]int)}
	project := make(map[string]bool)
	for _, row := range rows {
		key := tradeKey(row.Trade)
		if key == "" {
			continue
		}
		isProject := row.ProjectID != nil
		if project[key] && !isProject {
			continue
		}
		t.byTrade[key] = row.MaxConcurrent
		if isProject {
			project[key] = true
		}
	}
	return t
}

// Capacity returns the configured limit for trade, at least 1.
func (t *CapacityTable) Capacity(trade string) int {
	if n, ok := t.byTrade[tradeKey(trade)]; ok {
		return max(1, n)
	}
	return DefaultCapacity(trade)
}

func tradeKey(trade string) string {
	return strings.ToLower(strings.TrimSpace(trade))
}
