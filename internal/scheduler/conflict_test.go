package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatConflictMessage_Delayed(t *testing.T) {
	req := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	c := domain.ScheduleConflict{
		Type:           domain.ConflictStartDelayed,
		RequestedStart: &req,
		ScheduledStart: req.AddDate(0, 0, 2),
		Reasons:        []domain.ConflictReason{domain.ReasonRoomDependency, domain.ReasonTradeCapacity},
	}

	msg := FormatConflictMessage(c, "Kitchen", TradeDrywall)
	assert.Equal(t, "Kitchen · Drywall delayed from 2024-03-04 to 2024-03-06 due to room dependency, trade capacity", msg)
}

func TestFormatConflictMessage_HardLock(t *testing.T) {
	req := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	c := domain.ScheduleConflict{
		Type:           domain.ConflictHardStartConstraint,
		RequestedStart: &req,
		ScheduledStart: req,
		Reasons:        []domain.ConflictReason{domain.ReasonMitigation},
	}

	msg := FormatConflictMessage(c, "", TradePaint)
	assert.Equal(t, "Paint hard-locked on 2024-03-04 conflicts with schedule due to mitigation window", msg)
}

func TestFormatConflictMessage_NoLocationNoReasons(t *testing.T) {
	req := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	c := domain.ScheduleConflict{Type: domain.ConflictStartDelayed, RequestedStart: &req, ScheduledStart: req.AddDate(0, 0, 1)}

	assert.Equal(t, "Task delayed from 2024-03-04 to 2024-03-05", FormatConflictMessage(c, "", ""))
}

func TestReasonPhrase_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "other constraints", ReasonPhrase(domain.ReasonUnknown))
	assert.Equal(t, "other constraints", ReasonPhrase("SOMETHING_ELSE"))
}

func TestConflicts_LegendIsComplete(t *testing.T) {
	legend := Conflicts()

	assert.Len(t, legend.Types, 2)
	assert.Equal(t, "warning", legend.Types[0].Severity)
	assert.Equal(t, "error", legend.Types[1].Severity)

	codes := make([]domain.ConflictReason, 0, len(legend.Reasons))
	for _, r := range legend.Reasons {
		assert.NotEmpty(t, r.Description)
		codes = append(codes, r.Code)
	}
	assert.ElementsMatch(t, []domain.ConflictReason{
		domain.ReasonRoomDependency, domain.ReasonTradeCapacity, domain.ReasonMitigation, domain.ReasonUnknown,
	}, codes)
}
