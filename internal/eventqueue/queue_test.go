package eventqueue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePopOrdersByFireTime(t *testing.T) {
	q := New()
	q.Push(Event{FireTime: 30, Kind: Disposition})
	q.Push(Event{FireTime: 10, Kind: PatientArrival})
	q.Push(Event{FireTime: 20, Kind: TriageComplete})

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 10.0, first.FireTime)

	second, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 20.0, second.FireTime)

	third, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 30.0, third.FireTime)
}

func TestQueuePopBreaksTiesByInsertionOrder(t *testing.T) {
	q := New()
	q.Push(Event{FireTime: 5, Kind: PatientArrival})
	q.Push(Event{FireTime: 5, Kind: TriageComplete})
	q.Push(Event{FireTime: 5, Kind: AssignEDBed})

	first, _ := q.Pop()
	second, _ := q.Pop()
	third, _ := q.Pop()

	assert.Equal(t, PatientArrival, first.Kind)
	assert.Equal(t, TriageComplete, second.Kind)
	assert.Equal(t, AssignEDBed, third.Kind)
}

func TestQueuePopOnEmptyQueue(t *testing.T) {
	q := New()
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueueLen(t *testing.T) {
	q := New()
	assert.Equal(t, 0, q.Len())
	q.Push(Event{FireTime: 1})
	q.Push(Event{FireTime: 2})
	assert.Equal(t, 2, q.Len())
	q.Pop()
	assert.Equal(t, 1, q.Len())
}

func TestQueueMaintainsHeapInvariantUnderRandomInsertion(t *testing.T) {
	q := New()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		q.Push(Event{FireTime: r.Float64() * 1000})
	}

	var last float64 = -1
	for q.Len() > 0 {
		e, ok := q.Pop()
		require.True(t, ok)
		assert.GreaterOrEqual(t, e.FireTime, last)
		last = e.FireTime
	}
}
