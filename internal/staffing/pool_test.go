package staffing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientflow/edsim/internal/domain"
)

func TestFindAndAssignPrefersUnitRosterFirst(t *testing.T) {
	pool := NewPool()
	preferred := domain.NewUnit(domain.UnitED, 5)

	rostered := domain.NewStaff(domain.Nurse)
	elsewhere := domain.NewStaff(domain.Nurse)
	pool.Register(rostered)
	pool.Register(elsewhere)
	preferred.AddToRoster(rostered)

	staff, ok := pool.FindAndAssign(domain.Nurse, preferred, 0, 30, domain.UnitED, "triage")
	require.True(t, ok)
	assert.Equal(t, rostered.ID, staff.ID)
}

func TestFindAndAssignFallsBackToPoolWideWhenRosterIsBusy(t *testing.T) {
	pool := NewPool()
	preferred := domain.NewUnit(domain.UnitED, 5)

	busy := domain.NewStaff(domain.Nurse)
	busy.Assign(0, 100, domain.UnitED, "already-busy")
	free := domain.NewStaff(domain.Nurse)

	pool.Register(busy)
	pool.Register(free)
	preferred.AddToRoster(busy)

	staff, ok := pool.FindAndAssign(domain.Nurse, preferred, 10, 40, domain.UnitED, "triage")
	require.True(t, ok)
	assert.Equal(t, free.ID, staff.ID)
}

func TestFindAndAssignPicksLeastRecentlyBusy(t *testing.T) {
	pool := NewPool()
	earlierFree := domain.NewStaff(domain.Tech)
	earlierFree.Assign(0, 10, domain.UnitLab, "prior")
	laterFree := domain.NewStaff(domain.Tech)
	laterFree.Assign(0, 20, domain.UnitLab, "prior")

	pool.Register(earlierFree)
	pool.Register(laterFree)

	staff, ok := pool.FindAndAssign(domain.Tech, nil, 25, 40, domain.UnitLab, "lab")
	require.True(t, ok)
	assert.Equal(t, earlierFree.ID, staff.ID)
}

func TestFindAndAssignReturnsFalseWhenNoneFree(t *testing.T) {
	pool := NewPool()
	busy := domain.NewStaff(domain.Physician)
	busy.Assign(0, 1000, domain.UnitED, "assessment")
	pool.Register(busy)

	_, ok := pool.FindAndAssign(domain.Physician, nil, 5, 20, domain.UnitED, "assessment")
	assert.False(t, ok)
}

func TestRosteringARegisteredStaffMemberDoesNotDuplicateItInThePool(t *testing.T) {
	pool := NewPool()
	preferred := domain.NewUnit(domain.UnitED, 5)
	only := domain.NewStaff(domain.Nurse)
	pool.Register(only)
	preferred.AddToRoster(only)

	assert.Len(t, pool.AllStaff(), 1)
}

func TestAllStaffAcrossTypes(t *testing.T) {
	pool := NewPool()
	pool.Register(domain.NewStaff(domain.Nurse))
	pool.Register(domain.NewStaff(domain.Physician))
	pool.Register(domain.NewStaff(domain.Tech))

	assert.Len(t, pool.AllStaff(), 3)
}
