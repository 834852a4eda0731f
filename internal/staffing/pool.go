// Package staffing implements the staff selector of spec.md §4.4: building
// a preferred-unit-first candidate pool, filtering by availability, and
// picking the least-recently-busy free candidate.
package staffing

import (
	"github.com/google/uuid"

	"github.com/patientflow/edsim/internal/domain"
)

// Pool is the hospital-wide staff registry, grouped by type. Units hold
// their own rosters (subsets of the same *domain.Staff pointers) purely for
// preferred-unit ordering; the Pool is the source of truth for "all staff of
// this type everywhere".
type Pool struct {
	byType map[domain.StaffType][]*domain.Staff
}

// NewPool returns an empty registry.
func NewPool() *Pool {
	return &Pool{byType: make(map[domain.StaffType][]*domain.Staff)}
}

// Register adds a staff member to the registry.
func (p *Pool) Register(s *domain.Staff) {
	p.byType[s.Type] = append(p.byType[s.Type], s)
}

// All returns every staff member of the given type.
func (p *Pool) All(t domain.StaffType) []*domain.Staff {
	return p.byType[t]
}

// AllStaff returns every registered staff member, across all types.
func (p *Pool) AllStaff() []*domain.Staff {
	var all []*domain.Staff
	for _, list := range p.byType {
		all = append(all, list...)
	}
	return all
}

// FindAndAssign builds the candidate pool (preferred unit's roster first,
// then the remaining staff of that type, deduplicated), filters by
// IsFree(now), and assigns the one with the smallest BusyUntil. Returns
// false if no candidate is free.
func (p *Pool) FindAndAssign(staffType domain.StaffType, preferred *domain.Unit, now, busyUntil float64, assignedUnit domain.UnitName, description string) (*domain.Staff, bool) {
	seen := make(map[uuid.UUID]struct{})
	var candidates []*domain.Staff

	if preferred != nil {
		for _, s := range preferred.Roster(staffType) {
			if _, dup := seen[s.ID]; dup {
				continue
			}
			seen[s.ID] = struct{}{}
			candidates = append(candidates, s)
		}
	}
	for _, s := range p.byType[staffType] {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		candidates = append(candidates, s)
	}

	var best *domain.Staff
	for _, s := range candidates {
		if !s.IsFree(now) {
			continue
		}
		if best == nil || s.BusyUntil < best.BusyUntil {
			best = s
		}
	}
	if best == nil {
		return nil, false
	}
	best.Assign(now, busyUntil, assignedUnit, description)
	return best, true
}
