package domain

import "github.com/google/uuid"

// Unit is a bounded-capacity container. It holds only patient ids, never
// pointers back to Patient, matching the no-cyclic-reference design note.
type Unit struct {
	Name     UnitName
	Capacity int

	occupants map[uuid.UUID]struct{}
	roster    map[StaffType][]*Staff
}

// NewUnit creates a unit with the given bed/machine capacity. Capacity 0
// means the unit is disabled — admission always fails.
func NewUnit(name UnitName, capacity int) *Unit {
	return &Unit{
		Name:      name,
		Capacity:  capacity,
		occupants: make(map[uuid.UUID]struct{}),
		roster:    make(map[StaffType][]*Staff),
	}
}

// HasCapacity reports whether one more occupant can be admitted.
func (u *Unit) HasCapacity() bool {
	return len(u.occupants) < u.Capacity
}

// Occupancy returns the current occupant count.
func (u *Unit) Occupancy() int {
	return len(u.occupants)
}

// Admit adds a patient id to the occupant set. Returns false if the unit is
// full or the patient is already an occupant.
func (u *Unit) Admit(id uuid.UUID) bool {
	if !u.HasCapacity() {
		return false
	}
	if _, exists := u.occupants[id]; exists {
		return false
	}
	u.occupants[id] = struct{}{}
	return true
}

// Discharge removes a patient id from the occupant set.
func (u *Unit) Discharge(id uuid.UUID) {
	delete(u.occupants, id)
}

// Contains reports whether the given patient currently occupies this unit.
func (u *Unit) Contains(id uuid.UUID) bool {
	_, ok := u.occupants[id]
	return ok
}

// Roster returns the staff of the given type rostered to this unit.
func (u *Unit) Roster(t StaffType) []*Staff {
	return u.roster[t]
}

// AddToRoster rosters a staff member in this unit under their type.
func (u *Unit) AddToRoster(s *Staff) {
	u.roster[s.Type] = append(u.roster[s.Type], s)
}
