package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patientflow/edsim/internal/money"
)

func TestStaffIsFree(t *testing.T) {
	s := NewStaff(Nurse)
	assert.True(t, s.IsFree(0))

	s.Assign(0, 30, UnitED, "triage")
	assert.False(t, s.IsFree(15))
	assert.True(t, s.IsFree(30))
}

func TestStaffAssignAccruesCost(t *testing.T) {
	t.Run("first assignment accrues nothing, since nothing was in flight", func(t *testing.T) {
		s := NewStaff(Nurse)
		s.Assign(0, 60, UnitED, "triage")
		assert.Equal(t, money.Zero, s.NormalCost)
		assert.Equal(t, money.Zero, s.OvertimeCost)
	})

	t.Run("a second assignment bills the first task's duration", func(t *testing.T) {
		s := NewStaff(Nurse)
		s.Assign(0, 60, UnitED, "triage")
		s.Assign(60, 120, UnitED, "discharge")

		normal, overtime := money.SplitCost(CostPerMinute(Nurse), 60)
		assert.Equal(t, normal, s.NormalCost)
		assert.Equal(t, overtime, s.OvertimeCost)
	})

	t.Run("tracks the most recently assigned unit", func(t *testing.T) {
		s := NewStaff(Tech)
		s.Assign(0, 10, UnitLab, "lab")
		assert.True(t, s.HasAssignedUnit)
		assert.Equal(t, UnitLab, s.LastAssignedUnit)
	})
}

func TestStaffAccrueRemainder(t *testing.T) {
	t.Run("bills the in-flight task up to the horizon", func(t *testing.T) {
		s := NewStaff(Nurse)
		s.Assign(0, 1000, UnitED, "triage")
		s.AccrueRemainder(100)

		normal, overtime := money.SplitCost(CostPerMinute(Nurse), 101)
		assert.Equal(t, normal, s.NormalCost)
		assert.Equal(t, overtime, s.OvertimeCost)
	})

	t.Run("idempotent on a staff member who was never assigned", func(t *testing.T) {
		s := NewStaff(Nurse)
		s.AccrueRemainder(100)
		assert.Equal(t, money.Zero, s.NormalCost)
		assert.Equal(t, money.Zero, s.OvertimeCost)
	})
}
