package scheduler

import (
	"math"
	"strings"

	"github.com/alexanderramin/crewplan/internal/calendar"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/shopspring/decimal"
)

// LaborEstimate is the labor derivation for one estimate. Lines whose
// catalog lookup failed are reported in MissingPriceItems instead of being
// dropped silently.
type LaborEstimate struct {
	WorkPackages      []domain.WorkPackage
	MissingPriceItems []domain.MissingPriceItem
	TotalLaborHours   float64
}

// MissingLineCount returns how many lines were excluded for lack of a
// labor factor.
func (e LaborEstimate) MissingLineCount() int {
	n := 0
	for _, m := range e.MissingPriceItems {
		n += m.LineCount
	}
	return n
}

type packageKey struct {
	room      string
	trade     string
	phaseCode int
}

// EstimateLabor converts estimate lines into work packages using the labor
// factors of catalog. Work packages come back in canonical order.
func EstimateLabor(lines []domain.EstimateLine, catalog []domain.LaborCatalogEntry) LaborEstimate {
	hoursPerUnit := HoursPerUnit(catalog)

	var (
		result      LaborEstimate
		missingIdx  = make(map[domain.LineKey]int)
		packages    = make(map[packageKey]*domain.WorkPackage)
		packageKeys []packageKey
	)

	for _, line := range lines {
		if !qualifies(line) {
			continue
		}

		key := line.Key()
		hpu, ok := hoursPerUnit[key]
		if !ok {
			if i, seen := missingIdx[key]; seen {
				result.MissingPriceItems[i].LineCount++
				continue
			}
			missingIdx[key] = len(result.MissingPriceItems)
			result.MissingPriceItems = append(result.MissingPriceItems, domain.MissingPriceItem{
				Category:  line.Category,
				Selector:  line.Selector,
				Activity:  line.Activity,
				LineCount: 1,
			})
			continue
		}

		lineHours := line.Quantity.InexactFloat64() * hpu
		if lineHours == 0 || math.IsInf(lineHours, 0) || math.IsNaN(lineHours) {
			continue
		}

		cl := Classify(line.Category, line.Activity)
		pk := packageKey{room: line.RoomLabel(), trade: cl.Trade, phaseCode: cl.PhaseCode}
		pkg, exists := packages[pk]
		if !exists {
			pkg = &domain.WorkPackage{
				Room:       pk.room,
				Trade:      cl.Trade,
				PhaseCode:  cl.PhaseCode,
				PhaseLabel: cl.PhaseLabel,
			}
			packages[pk] = pkg
			packageKeys = append(packageKeys, pk)
		}
		pkg.TotalLaborHours += lineHours
		pkg.LineCount++
	}

	result.WorkPackages = make([]domain.WorkPackage, 0, len(packageKeys))
	for _, pk := range packageKeys {
		pkg := packages[pk]
		pkg.CrewSize = CrewSize(pkg.Trade)
		pkg.DurationDays = PackageDuration(pkg.TotalLaborHours, pkg.CrewSize)
		result.TotalLaborHours += pkg.TotalLaborHours
		result.WorkPackages = append(result.WorkPackages, *pkg)
	}
	SortWorkPackages(result.WorkPackages)

	return result
}

// qualifies reports whether a line takes part in labor estimation:
// positive quantity and non-empty category and selector.
func qualifies(line domain.EstimateLine) bool {
	return line.CategoryCode() != "" && line.SelectorCode() != "" && line.Quantity.IsPositive()
}

// HoursPerUnit derives labor hours per unit for every non-hourly catalog
// entry, keyed by (category, selector, activity). Hourly entries supply the
// rate for their labor-minimum code; the first usable entry wins for both
// the rate and the per-key factor.
func HoursPerUnit(catalog []domain.LaborCatalogEntry) map[domain.LineKey]float64 {
	hourlyRate := make(map[string]decimal.Decimal)
	for _, e := range catalog {
		if !e.IsHourly() {
			continue
		}
		cost := e.LaborCost()
		if !cost.IsPositive() {
			continue
		}
		lm := strings.TrimSpace(e.LaborMinimumCode)
		if lm == "" {
			continue
		}
		if _, ok := hourlyRate[lm]; !ok {
			hourlyRate[lm] = cost
		}
	}

	out := make(map[domain.LineKey]float64)
	for _, e := range catalog {
		if strings.TrimSpace(e.Unit) == "" || e.IsHourly() {
			continue
		}
		cost := e.LaborCost()
		if cost.IsZero() {
			continue
		}
		rate, ok := hourlyRate[strings.TrimSpace(e.LaborMinimumCode)]
		if !ok {
			continue
		}
		hpu := cost.Div(rate).InexactFloat64()
		if hpu == 0 || math.IsInf(hpu, 0) || math.IsNaN(hpu) {
			continue
		}
		key := e.Key()
		if key.Category == "" || key.Selector == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = hpu
		}
	}
	return out
}

// PackageDuration converts labor hours into crew days rounded up to the
// nearest half day. Zero hours yields zero days.
func PackageDuration(totalLaborHours float64, crewSize int) float64 {
	if crewSize <= 0 {
		crewSize = 1
	}
	raw := totalLaborHours / float64(crewSize*calendar.HoursPerDay)
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0
	}
	return math.Ceil(raw*2) / 2
}
