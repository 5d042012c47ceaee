package domain

import "strings"

type TaskKind string

const (
	TaskMitigation TaskKind = "MITIGATION"
	TaskWork       TaskKind = "WORK"
)

// LockType controls whether the builder may move a requested start date.
// SOFT treats the date as an earliest-allowed floor; HARD keeps it verbatim
// and only reports the constraints it violates.
type LockType string

const (
	LockSoft LockType = "SOFT"
	LockHard LockType = "HARD"
)

// ParseLockType maps any value other than HARD (case-insensitive) to SOFT.
func ParseLockType(s string) LockType {
	if strings.EqualFold(strings.TrimSpace(s), string(LockHard)) {
		return LockHard
	}
	return LockSoft
}

type ConflictType string

const (
	ConflictStartDelayed        ConflictType = "START_DELAYED"
	ConflictHardStartConstraint ConflictType = "HARD_START_CONSTRAINT"
)

type ConflictReason string

const (
	ReasonRoomDependency ConflictReason = "ROOM_DEPENDENCY"
	ReasonTradeCapacity  ConflictReason = "TRADE_CAPACITY"
	ReasonMitigation     ConflictReason = "MITIGATION"
	ReasonUnknown        ConflictReason = "UNKNOWN"
)

type ChangeType string

const (
	ChangeTaskCreated ChangeType = "TASK_CREATED"
	ChangeTaskUpdated ChangeType = "TASK_UPDATED"
)

type CapacityScope string

const (
	ScopeProject CapacityScope = "project"
	ScopeCompany CapacityScope = "company"
)

// PriceListKindGolden is the only catalog kind the scheduler reads labor
// factors from.
const PriceListKindGolden = "GOLDEN"
