package scheduler

import "strings"

// Trade names.
const (
	TradeMitigation = "Mitigation"
	TradeDrywall    = "Drywall"
	TradePaint      = "Paint"
	TradeFlooring   = "Flooring"
	TradeCarpentry  = "Carpentry"
	TradePlumbing   = "Plumbing"
	TradeElectrical = "Electrical"
	TradeGeneral    = "General"
)

// Phase codes order work inside a room; lower runs first.
const (
	PhaseMitigationWindow = 5
	PhaseMitigation       = 10
	PhaseDrywallDemo      = 30
	PhaseDrywall          = 40
	PhasePaint            = 50
	PhaseFlooring         = 60
	PhaseTrim             = 70
	PhaseMechanical       = 80
	PhaseOther            = 90
)

// MitigationPhaseLabel labels the project-wide dry-out task.
const MitigationPhaseLabel = "Mitigation / Dry-out"

// Classification is the trade and phase a line item belongs to.
type Classification struct {
	Trade      string
	PhaseCode  int
	PhaseLabel string
}

var categoryClassification = map[string]Classification{
	"WTR": {TradeMitigation, PhaseMitigation, "Mitigation"},
	"PNT": {TradePaint, PhasePaint, "Paint"},
	"FCV": {TradeFlooring, PhaseFlooring, "Flooring"},
	"FCW": {TradeFlooring, PhaseFlooring, "Flooring"},
	"FCT": {TradeFlooring, PhaseFlooring, "Flooring"},
	"FNC": {TradeCarpentry, PhaseTrim, "Trim & Doors"},
	"FNH": {TradeCarpentry, PhaseTrim, "Trim & Doors"},
	"DOR": {TradeCarpentry, PhaseTrim, "Trim & Doors"},
	"WDW": {TradeCarpentry, PhaseTrim, "Trim & Doors"},
	"CAB": {TradeCarpentry, PhaseTrim, "Trim & Doors"},
	"PLM": {TradePlumbing, PhaseMechanical, "Plumbing"},
	"ELE": {TradeElectrical, PhaseMechanical, "Electrical"},
}

var (
	drywallDemo    = Classification{TradeDrywall, PhaseDrywallDemo, "Drywall Demo"}
	drywallInstall = Classification{TradeDrywall, PhaseDrywall, "Drywall"}
	general        = Classification{TradeGeneral, PhaseOther, "Other"}
)

// Classify maps a category code and activity text to a trade and phase.
// Only DRY looks at the activity: "remove" without "replace" is demo work.
func Classify(category, activity string) Classification {
	c := strings.ToUpper(strings.TrimSpace(category))
	if c == "DRY" {
		act := strings.ToLower(activity)
		if strings.Contains(act, "remove") && !strings.Contains(act, "replace") {
			return drywallDemo
		}
		return drywallInstall
	}
	if cl, ok := categoryClassification[c]; ok {
		return cl
	}
	return general
}

// CrewSize is the number of workers a trade sends to a job.
func CrewSize(trade string) int {
	switch trade {
	case TradeDrywall:
		return 3
	case TradeMitigation, TradePaint, TradeFlooring, TradeCarpentry, TradePlumbing, TradeElectrical:
		return 2
	default:
		return 1
	}
}

// DefaultCapacity is the number of concurrent crews a trade runs when no
// capacity is configured.
func DefaultCapacity(trade string) int {
	if trade == TradeMitigation {
		return 2
	}
	return 1
}

// Trades lists every named trade in phase order.
func Trades() []string {
	return []string{
		TradeMitigation, TradeDrywall, TradePaint, TradeFlooring,
		TradeCarpentry, TradePlumbing, TradeElectrical, TradeGeneral,
	}
}
