package scheduler

import "time"

// CapacityResolver returns how many crews of a trade may work at once.
type CapacityResolver interface {
	Capacity(trade string) int
}

// CapacityFunc adapts a function to CapacityResolver.
type CapacityFunc func(trade string) int

func (f CapacityFunc) Capacity(trade string) int { return f(trade) }

// DefaultCapacities resolves every trade to its built-in default.
var DefaultCapacities CapacityResolver = CapacityFunc(DefaultCapacity)

// laneSet holds the end date of the last task assigned to each of a trade's
// concurrent lanes. The zero time marks a lane that was never used.
type laneSet []time.Time

func newLaneSet(capacity int) laneSet {
	return make(laneSet, max(1, capacity))
}

// freeLane returns the lowest-index lane whose last task ends on or before
// start, or -1 when every lane is busy.
func (l laneSet) freeLane(start time.Time) int {
	for i, end := range l {
		if end.IsZero() || !end.After(start) {
			return i
		}
	}
	return -1
}

// earliestEnd returns the soonest lane end.
func (l laneSet) earliestEnd() time.Time {
	earliest := l[0]
	for _, end := range l[1:] {
		if end.Before(earliest) {
			earliest = end
		}
	}
	return earliest
}

// occupy records a task ending at end on lane. A lane keeps the latest end
// it has seen, so a pinned task that overlaps a longer running task does not
// release the lane early.
func (l laneSet) occupy(lane int, end time.Time) {
	if end.After(l[lane]) {
		l[lane] = end
	}
}

// laneFor picks the lane a task starting at start occupies: the first free
// lane, else lane 0. The second return reports whether that lane is still
// busy at start, which only happens for tasks that may not move.
func (l laneSet) laneFor(start time.Time) (int, bool) {
	if i := l.freeLane(start); i >= 0 {
		return i, false
	}
	return 0, true
}

type lanesByTrade struct {
	resolver CapacityResolver
	lanes    map[string]laneSet
}

func newLanesByTrade(resolver CapacityResolver) *lanesByTrade {
	if resolver == nil {
		resolver = DefaultCapacities
	}
	return &lanesByTrade{resolver: resolver, lanes: make(map[string]laneSet)}
}

func (t *lanesByTrade) get(trade string) laneSet {
	ls, ok := t.lanes[trade]
	if !ok {
		ls = newLaneSet(t.resolver.Capacity(trade))
		t.lanes[trade] = ls
	}
	return ls
}
