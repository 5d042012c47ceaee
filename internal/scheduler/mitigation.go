package scheduler

import (
	"regexp"
	"strconv"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// mitigationEquipment lists the WTR selectors for drying equipment.
var mitigationEquipment = map[string]bool{
	"DHM>>": true, // dehumidifier
	"DRY":   true, // air mover / dryer
}

// daysPattern reads day counts from notes like "3 unit for 3 Days".
// A unit count in the same note does not change the result.
var daysPattern = regexp.MustCompile(`(?i)(\d+)\s*day`)

// DetectMitigation derives the project-wide dry-out window from WTR
// equipment lines. Each qualifying line contributes its quantity as a day
// count unless its note states a positive day count. Returns nil when no
// line qualifies or the longest duration is not positive.
func DetectMitigation(lines []domain.EstimateLine) *domain.MitigationWindow {
	var (
		days  float64
		count int
	)
	for _, line := range lines {
		if line.CategoryCode() != "WTR" || !mitigationEquipment[line.SelectorCode()] {
			continue
		}
		count++

		candidate := line.Quantity.InexactFloat64()
		if n, ok := noteDays(line.Note); ok {
			candidate = float64(n)
		}
		if candidate > days {
			days = candidate
		}
	}

	if count == 0 || days <= 0 {
		return nil
	}
	return &domain.MitigationWindow{DurationDays: days, EquipmentLineCount: count}
}

func noteDays(note string) (int, bool) {
	m := daysPattern.FindStringSubmatch(note)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
