package contract

import (
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calendar"
)

// DefaultMaxSummaryRangeDays caps the span of a daily summary request.
const DefaultMaxSummaryRangeDays = 180

// DailySummaryRequest asks for per-day, per-trade aggregates of a project's
// persisted tasks. To defaults to From.
type DailySummaryRequest struct {
	CompanyID string
	ProjectID string `validate:"required"`
	From      string `validate:"required"`
	To        string
}

// Range validates the request and returns its date-only bounds. Invalid
// dates, a reversed range, and spans longer than maxDays are rejected.
func (r DailySummaryRequest) Range(maxDays int) (time.Time, time.Time, error) {
	if err := Validate(r); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxSummaryRangeDays
	}

	from, err := calendar.ParseDate(r.From)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("From", err.Error())
	}
	to := from
	if r.To != "" {
		if to, err = calendar.ParseDate(r.To); err != nil {
			return time.Time{}, time.Time{}, NewValidationError("To", err.Error())
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, NewValidationError("To", "must not be before From")
	}
	if span := calendar.DaysBetween(from, to); span > maxDays {
		return time.Time{}, time.Time{}, NewValidationError("To",
			fmt.Sprintf("range of %d days exceeds the %d day maximum", span, maxDays))
	}
	return from, to, nil
}
