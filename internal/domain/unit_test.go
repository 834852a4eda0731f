package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUnitCapacity(t *testing.T) {
	t.Run("zero capacity always refuses admission", func(t *testing.T) {
		u := NewUnit(UnitED, 0)
		assert.False(t, u.HasCapacity())
		assert.False(t, u.Admit(uuid.New()))
	})

	t.Run("admits up to capacity then refuses", func(t *testing.T) {
		u := NewUnit(UnitED, 2)
		a, b, c := uuid.New(), uuid.New(), uuid.New()

		assert.True(t, u.Admit(a))
		assert.True(t, u.Admit(b))
		assert.False(t, u.HasCapacity())
		assert.False(t, u.Admit(c))
		assert.Equal(t, 2, u.Occupancy())
	})

	t.Run("rejects a duplicate admit", func(t *testing.T) {
		u := NewUnit(UnitED, 2)
		id := uuid.New()
		assert.True(t, u.Admit(id))
		assert.False(t, u.Admit(id))
		assert.Equal(t, 1, u.Occupancy())
	})

	t.Run("discharge frees a slot", func(t *testing.T) {
		u := NewUnit(UnitED, 1)
		id := uuid.New()
		assert.True(t, u.Admit(id))
		u.Discharge(id)
		assert.True(t, u.HasCapacity())
		assert.False(t, u.Contains(id))
	})
}

func TestUnitRoster(t *testing.T) {
	t.Run("rosters staff by type", func(t *testing.T) {
		u := NewUnit(UnitED, 5)
		nurse := NewStaff(Nurse)
		physician := NewStaff(Physician)
		u.AddToRoster(nurse)
		u.AddToRoster(physician)

		assert.Equal(t, []*Staff{nurse}, u.Roster(Nurse))
		assert.Equal(t, []*Staff{physician}, u.Roster(Physician))
		assert.Empty(t, u.Roster(Tech))
	})
}
