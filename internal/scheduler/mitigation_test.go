package scheduler

import (
	"testing"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equipment(sel, qty, note string) domain.EstimateLine {
	l := line("WTR", sel, "", qty, "Kitchen")
	l.Note = note
	return l
}

func TestDetectMitigation_NoteDaysWin(t *testing.T) {
	w := DetectMitigation([]domain.EstimateLine{equipment("DHM>>", "3", "3 unit for 3 Days")})
	require.NotNil(t, w)
	assert.Equal(t, 3.0, w.DurationDays)
	assert.Equal(t, 1, w.EquipmentLineCount)

	w = DetectMitigation([]domain.EstimateLine{equipment("DRY", "12", "4 units for 5 days")})
	require.NotNil(t, w)
	assert.Equal(t, 5.0, w.DurationDays, "unit count does not affect the window")
}

func TestDetectMitigation_QuantityWhenNoteHasNoDays(t *testing.T) {
	w := DetectMitigation([]domain.EstimateLine{
		equipment("dry", "2", "air movers"),
		equipment(" DHM>> ", "4", ""),
	})
	require.NotNil(t, w)
	assert.Equal(t, 4.0, w.DurationDays)
	assert.Equal(t, 2, w.EquipmentLineCount)
}

func TestDetectMitigation_LongestLineWins(t *testing.T) {
	w := DetectMitigation([]domain.EstimateLine{
		equipment("DRY", "3", "3 DAY rental"),
		equipment("DHM>>", "1", "1 unit for 6 days"),
		equipment("DRY", "2", ""),
	})
	require.NotNil(t, w)
	assert.Equal(t, 6.0, w.DurationDays)
	assert.Equal(t, 3, w.EquipmentLineCount)
}

func TestDetectMitigation_ZeroDayNoteFallsBackToQuantity(t *testing.T) {
	w := DetectMitigation([]domain.EstimateLine{equipment("DRY", "2", "0 days")})
	require.NotNil(t, w)
	assert.Equal(t, 2.0, w.DurationDays)
}

func TestDetectMitigation_NilCases(t *testing.T) {
	assert.Nil(t, DetectMitigation(nil))
	assert.Nil(t, DetectMitigation([]domain.EstimateLine{
		line("DRY", "1/2", "+", "100", "Kitchen"),
		equipment("EQUIP", "3", "3 days"),
	}), "other WTR selectors are not drying equipment")
	assert.Nil(t, DetectMitigation([]domain.EstimateLine{equipment("DRY", "0", "no duration")}))
}
