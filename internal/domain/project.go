package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownRoom is the room label for lines without a group.
const UnknownRoom = "Unknown"

type Project struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}

// Estimate is one imported estimate version of a project.
type Estimate struct {
	ID         string
	ProjectID  string
	Label      string
	ImportedAt *time.Time
	CreatedAt  time.Time
}

// EstimateLine is a priced line item. Lines are immutable once imported.
type EstimateLine struct {
	ID         string
	EstimateID string
	Seq        int
	Category   string
	Selector   string
	Activity   string
	Quantity   decimal.Decimal
	Room       string
	Note       string
	SourceDate *time.Time
}

// CategoryCode returns the trimmed, uppercased category.
func (l EstimateLine) CategoryCode() string {
	return strings.ToUpper(strings.TrimSpace(l.Category))
}

// SelectorCode returns the trimmed, uppercased selector.
func (l EstimateLine) SelectorCode() string {
	return strings.ToUpper(strings.TrimSpace(l.Selector))
}

// ActivityCode returns the trimmed activity. Activity keeps its case.
func (l EstimateLine) ActivityCode() string {
	return strings.TrimSpace(l.Activity)
}

// RoomLabel returns the trimmed room, defaulting to UnknownRoom.
func (l EstimateLine) RoomLabel() string {
	if room := strings.TrimSpace(l.Room); room != "" {
		return room
	}
	return UnknownRoom
}
