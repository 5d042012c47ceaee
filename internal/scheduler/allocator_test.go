package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLaneSet_FreeLaneAllowsSameDayHandoff(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	lanes := newLaneSet(1)

	assert.Equal(t, 0, lanes.freeLane(mon), "unused lane is free")

	lanes[0] = mon
	assert.Equal(t, 0, lanes.freeLane(mon), "a lane ending on the start day is free")
	assert.Equal(t, -1, lanes.freeLane(mon.AddDate(0, 0, -1)))
}

func TestLaneSet_PicksLowestFreeLane(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	lanes := newLaneSet(3)
	lanes[0] = mon.AddDate(0, 0, 5)
	lanes[1] = mon.AddDate(0, 0, 1)

	assert.Equal(t, 2, lanes.freeLane(mon))
	assert.Equal(t, 1, lanes.freeLane(mon.AddDate(0, 0, 1)))
}

func TestLaneSet_EarliestEnd(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	lanes := newLaneSet(3)
	lanes[0] = mon.AddDate(0, 0, 4)
	lanes[1] = mon.AddDate(0, 0, 2)
	lanes[2] = mon.AddDate(0, 0, 3)

	assert.Equal(t, mon.AddDate(0, 0, 2), lanes.earliestEnd())
}

func TestLaneSet_OccupyKeepsLatestEnd(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	lanes := newLaneSet(1)

	lanes.occupy(0, mon.AddDate(0, 0, 4))
	lanes.occupy(0, mon)
	assert.Equal(t, mon.AddDate(0, 0, 4), lanes[0], "a shorter overlapping task does not shorten the lane")

	lanes.occupy(0, mon.AddDate(0, 0, 7))
	assert.Equal(t, mon.AddDate(0, 0, 7), lanes[0])
}

func TestLaneSet_LaneForReportsOverbooking(t *testing.T) {
	mon := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	lanes := newLaneSet(2)
	lanes[0] = mon.AddDate(0, 0, 2)
	lanes[1] = mon.AddDate(0, 0, 1)

	lane, overbooked := lanes.laneFor(mon)
	assert.Equal(t, 0, lane, "overbooked tasks land on lane 0")
	assert.True(t, overbooked)

	lane, overbooked = lanes.laneFor(mon.AddDate(0, 0, 1))
	assert.Equal(t, 1, lane)
	assert.False(t, overbooked)
}

func TestNewLaneSet_ClampsCapacityToOne(t *testing.T) {
	assert.Len(t, newLaneSet(0), 1)
	assert.Len(t, newLaneSet(-3), 1)
	assert.Len(t, newLaneSet(4), 4)
}

func TestLanesByTrade_UsesResolverOncePerTrade(t *testing.T) {
	calls := map[string]int{}
	lbt := newLanesByTrade(CapacityFunc(func(trade string) int {
		calls[trade]++
		return 3
	}))

	assert.Len(t, lbt.get(TradePaint), 3)
	lbt.get(TradePaint)
	assert.Equal(t, 1, calls[TradePaint])
}

func TestLanesByTrade_NilResolverUsesDefaults(t *testing.T) {
	lbt := newLanesByTrade(nil)
	assert.Len(t, lbt.get(TradeMitigation), 2)
	assert.Len(t, lbt.get(TradeDrywall), 1)
}
