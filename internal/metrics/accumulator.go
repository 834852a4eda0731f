// Package metrics is the streaming aggregator of spec.md §4.5: running
// lists, coalesced occupancy series, and the final report. Grounded on
// internal/positions/tracker.go's append-only event list pattern.
package metrics

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/money"
)

// Accumulator collects every stream the final Report is built from.
type Accumulator struct {
	edLOS                 []float64
	edBoarding            []float64
	totalLOS              []float64
	transferTimeToAdmit   []float64
	edWaitForTransport    []float64
	imagingTATOverall     []float64
	imagingTATCritical    []float64
	imagingTATEDCDUOrigin []float64
	satisfaction          []float64

	cduTotalPatients int
	cduConversions   int
	transportCounts  map[domain.TransportMode]int

	amenitiesCost     money.Money
	entertainmentCost money.Money

	CDUSeries       OccupancySeries
	InpatientSeries OccupancySeries
	PulleySeries    OccupancySeries
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{
		transportCounts: make(map[domain.TransportMode]int),
	}
}

func (a *Accumulator) RecordEDLOS(v float64)               { a.edLOS = append(a.edLOS, v) }
func (a *Accumulator) RecordEDBoarding(v float64)           { a.edBoarding = append(a.edBoarding, v) }
func (a *Accumulator) RecordTotalLOS(v float64)             { a.totalLOS = append(a.totalLOS, v) }
func (a *Accumulator) RecordTransferTimeToAdmit(v float64)  { a.transferTimeToAdmit = append(a.transferTimeToAdmit, v) }
func (a *Accumulator) RecordEDWaitForTransport(v float64)   { a.edWaitForTransport = append(a.edWaitForTransport, v) }
func (a *Accumulator) RecordSatisfaction(v float64)         { a.satisfaction = append(a.satisfaction, v) }

// RecordImagingTAT records one imaging turnaround, optionally attributing it
// to the critical and/or ED/CDU-origin subsets.
func (a *Accumulator) RecordImagingTAT(v float64, critical, edOrCDUOrigin bool) {
	a.imagingTATOverall = append(a.imagingTATOverall, v)
	if critical {
		a.imagingTATCritical = append(a.imagingTATCritical, v)
	}
	if edOrCDUOrigin {
		a.imagingTATEDCDUOrigin = append(a.imagingTATEDCDUOrigin, v)
	}
}

func (a *Accumulator) RecordCDUAdmission()  { a.cduTotalPatients++ }
func (a *Accumulator) RecordCDUConversion() { a.cduConversions++ }

func (a *Accumulator) RecordTransport(mode domain.TransportMode) {
	a.transportCounts[mode]++
}

func (a *Accumulator) AddAmenitiesCost(cost money.Money) {
	a.amenitiesCost = a.amenitiesCost.Add(cost)
}

func (a *Accumulator) SetEntertainmentCost(cost money.Money) {
	a.entertainmentCost = cost
}

func mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
