package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoadBar renders a load gauge like [████░░░░] 3/4. Load at or above
// the peak is red, above half is yellow, anything lighter is green.
func RenderLoadBar(load, peak float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if peak > 0 {
		pct = load / peak
	}
	pct = min(max(pct, 0), 1)

	filled := int(pct*float64(width) + 0.5)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 1:
		style = StyleRed
	case pct > 0.5:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s/%s", style.Render(bar), trimFloat(load), trimFloat(peak))
}
