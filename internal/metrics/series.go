package metrics

// Point is one sample of a stepwise occupancy series.
type Point struct {
	Time  float64
	Count int
}

// OccupancySeries coalesces samples: a new point is appended only when the
// count differs from the last recorded point, per spec.md §4.5.
type OccupancySeries struct {
	points   []Point
	lastSet  bool
	lastCount int
}

// Sample records an occupancy observation at time t. No-op if count is
// unchanged since the last recorded point.
func (s *OccupancySeries) Sample(t float64, count int) {
	if s.lastSet && count == s.lastCount {
		return
	}
	s.points = append(s.points, Point{Time: t, Count: count})
	s.lastSet = true
	s.lastCount = count
}

// TimeWeightedAverage computes the mean occupancy over [0, horizon] per the
// stepwise-integral formula of spec.md §4.5.
func (s *OccupancySeries) TimeWeightedAverage(horizon float64) float64 {
	n := len(s.points)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return float64(s.points[0].Count)
	}
	var area float64
	for i := 1; i < n; i++ {
		area += float64(s.points[i-1].Count) * (s.points[i].Time - s.points[i-1].Time)
	}
	area += float64(s.points[n-1].Count) * (horizon - s.points[n-1].Time)
	return area / horizon
}

// Utilization returns the percentage utilization given a unit's capacity.
func Utilization(avgOccupancy float64, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return 100 * avgOccupancy / float64(capacity)
}
