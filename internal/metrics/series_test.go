package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancySeriesCoalescesUnchangedSamples(t *testing.T) {
	var s OccupancySeries
	s.Sample(0, 5)
	s.Sample(10, 5)
	s.Sample(20, 5)
	s.Sample(30, 8)

	assert.Equal(t, []Point{{Time: 0, Count: 5}, {Time: 30, Count: 8}}, s.points)
}

func TestOccupancySeriesTimeWeightedAverage(t *testing.T) {
	t.Run("empty series averages to zero", func(t *testing.T) {
		var s OccupancySeries
		assert.Equal(t, 0.0, s.TimeWeightedAverage(100))
	})

	t.Run("single sample holds for the whole horizon", func(t *testing.T) {
		var s OccupancySeries
		s.Sample(0, 4)
		assert.Equal(t, 4.0, s.TimeWeightedAverage(100))
	})

	t.Run("stepwise integral over several samples", func(t *testing.T) {
		var s OccupancySeries
		s.Sample(0, 2)  // holds [0,50) at 2
		s.Sample(50, 4) // holds [50,100) at 4
		// area = 2*50 + 4*50 = 300, over horizon 100 => 3.0
		assert.Equal(t, 3.0, s.TimeWeightedAverage(100))
	})
}

func TestUtilization(t *testing.T) {
	assert.Equal(t, 50.0, Utilization(5, 10))
	assert.Equal(t, 0.0, Utilization(5, 0))
	assert.Equal(t, 0.0, Utilization(5, -1))
}
