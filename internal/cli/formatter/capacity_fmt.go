package formatter

import (
	"strconv"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// FormatCapacity renders configured trade limits. Project rows override
// company rows for the same trade.
func FormatCapacity(rows []domain.TradeCapacity) string {
	if len(rows) == 0 {
		return Dim("No trade capacity configured; built-in defaults apply.") + "\n"
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		scope := StyleBlue.Render(string(r.Scope()))
		if r.Scope() == domain.ScopeCompany {
			scope = StylePurple.Render(string(r.Scope()))
		}
		out[i] = []string{
			r.Trade,
			strconv.Itoa(r.MaxConcurrent),
			scope,
			r.UpdatedAt.UTC().Format("2006-01-02 15:04"),
		}
	}
	return RenderTable([]string{"TRADE", "MAX CREWS", "SCOPE", "UPDATED"}, out, 1)
}
