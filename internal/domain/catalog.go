package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HourlyUnit marks catalog entries priced per labor hour.
const HourlyUnit = "HR"

// PriceList is a versioned labor-rate catalog.
type PriceList struct {
	ID        string
	Kind      string
	Revision  int
	IsActive  bool
	CreatedAt time.Time
}

// LaborCatalogEntry is one (category, selector, activity) row of a price list.
type LaborCatalogEntry struct {
	ID               string
	PriceListID      string
	Category         string
	Selector         string
	Activity         string
	Unit             string
	LaborMinimumCode string
	Wage             decimal.Decimal
	LaborBurden      decimal.Decimal
	LaborOverhead    decimal.Decimal
}

// LaborCost is the per-unit labor cost: wage + burden + overhead.
func (e LaborCatalogEntry) LaborCost() decimal.Decimal {
	return e.Wage.Add(e.LaborBurden).Add(e.LaborOverhead)
}

// IsHourly reports whether the entry is priced per labor hour.
func (e LaborCatalogEntry) IsHourly() bool {
	return strings.EqualFold(strings.TrimSpace(e.Unit), HourlyUnit)
}

// LineKey identifies a catalog entry or estimate line by its
// (category, selector, activity) triple after normalization.
type LineKey struct {
	Category string
	Selector string
	Activity string
}

// Key returns the normalized lookup key of a catalog entry.
func (e LaborCatalogEntry) Key() LineKey {
	return LineKey{
		Category: strings.ToUpper(strings.TrimSpace(e.Category)),
		Selector: strings.ToUpper(strings.TrimSpace(e.Selector)),
		Activity: strings.TrimSpace(e.Activity),
	}
}

// Key returns the normalized lookup key of an estimate line.
func (l EstimateLine) Key() LineKey {
	return LineKey{Category: l.CategoryCode(), Selector: l.SelectorCode(), Activity: l.ActivityCode()}
}
