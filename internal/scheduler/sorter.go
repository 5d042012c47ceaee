package scheduler

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// SortWorkPackages sorts packages by the canonical scheduling order:
// 1. Room: lexical ascending
// 2. Phase code: ascending
// 3. Trade: lexical ascending (plumbing and electrical share a phase)
//
// Synthetic task ids are positions in this order, so it must stay
// deterministic for commits to diff cleanly.
func SortWorkPackages(pkgs []domain.WorkPackage) {
	slices.SortStableFunc(pkgs, func(a, b domain.WorkPackage) int {
		if c := cmp.Compare(a.Room, b.Room); c != 0 {
			return c
		}
		if c := cmp.Compare(a.PhaseCode, b.PhaseCode); c != 0 {
			return c
		}
		return cmp.Compare(a.Trade, b.Trade)
	})
}
