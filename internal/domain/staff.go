package domain

import (
	"github.com/google/uuid"

	"github.com/patientflow/edsim/internal/money"
)

// Assignment describes what a staff member is currently doing. It replaces
// a generic "current task" map with a closed set of fields — there is only
// ever one assignment in flight per staff member.
type Assignment struct {
	Description string
	Unit        UnitName
}

// Staff is a single roster member. BusyUntil is the only mutable scheduling
// field read by IsFree; it has exactly one writer, Assign, by construction
// of the single-threaded dispatcher.
type Staff struct {
	ID                uuid.UUID
	Type              StaffType
	BusyUntil         float64
	LastAssignStart   float64
	Current           *Assignment
	LastAssignedUnit  UnitName
	HasAssignedUnit   bool

	NormalCost   money.Money
	OvertimeCost money.Money
}

// NewStaff creates an idle staff member of the given type.
func NewStaff(t StaffType) *Staff {
	return &Staff{ID: uuid.New(), Type: t}
}

// IsFree reports whether the staff member can take a new assignment at t.
func (s *Staff) IsFree(t float64) bool {
	return t >= s.BusyUntil
}

// Assign accrues the cost of whatever task is ending now (idempotent: if
// nothing was in flight, busyUntil == lastAssignStart == 0 and the accrued
// duration is zero) and then books the new assignment.
func (s *Staff) Assign(now, busyUntil float64, unit UnitName, description string) {
	s.accrue(s.BusyUntil)
	s.LastAssignStart = now
	s.BusyUntil = busyUntil
	s.Current = &Assignment{Description: description, Unit: unit}
	s.LastAssignedUnit = unit
	s.HasAssignedUnit = true
}

// AccrueRemainder books the cost of the in-flight assignment at the end of
// the simulation, whose duration is clamped to the horizon.
func (s *Staff) AccrueRemainder(horizon float64) {
	capped := s.BusyUntil
	if horizon+1 < capped {
		capped = horizon + 1
	}
	s.accrue(capped)
}

// accrue books the 80/20 normal/overtime split for the completed interval
// [LastAssignStart, until) at this staff type's per-minute rate.
func (s *Staff) accrue(until float64) {
	duration := until - s.LastAssignStart
	if duration <= 0 {
		return
	}
	normal, overtime := money.SplitCost(CostPerMinute(s.Type), duration)
	s.NormalCost = s.NormalCost.Add(normal)
	s.OvertimeCost = s.OvertimeCost.Add(overtime)
	s.LastAssignStart = until
}
