package metrics

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/money"
)

// Report is the output record of spec.md §6, consumed by whatever external
// reporter the caller wires up — the core never formats it.
type Report struct {
	AvgEDLOS              float64
	AvgEDBoarding         float64
	AvgTotalHospitalLOS   float64

	CDUDischargeRate      float64
	CDUAvgOccupancy       float64
	CDUUtilization        float64
	InpatientAvgOccupancy float64
	InpatientUtilization  float64
	PulleyAvgOccupancy    float64
	PulleyUtilization     float64

	AvgTransferTimeToAdmit  float64
	AvgEDWaitForTransport   float64
	TransportCounts         map[domain.TransportMode]int

	ImagingTATOverall     float64
	ImagingTATCritical    float64
	ImagingTATEDCDUOrigin float64

	AvgPatientSatisfaction      float64
	AvgPatientSatisfactionKnown bool

	TotalNormalCost          money.Money
	TotalOvertimeCost        money.Money
	TotalStaffCost           money.Money
	TotalAmenitiesCost       money.Money
	TotalAIEntertainmentCost money.Money
	TotalHospitalExpenses    money.Money
}

// Build assembles the final Report. staff is every staff member in the
// simulation (for cost totals); unitCapacity maps the three tracked units to
// their configured capacity for utilization percentages.
func (a *Accumulator) Build(horizon float64, staff []*domain.Staff, unitCapacity map[domain.UnitName]int) Report {
	var r Report

	r.AvgEDLOS, _ = mean(a.edLOS)
	r.AvgEDBoarding, _ = mean(a.edBoarding)
	r.AvgTotalHospitalLOS, _ = mean(a.totalLOS)

	if a.cduTotalPatients > 0 {
		r.CDUDischargeRate = float64(a.cduConversions) / float64(a.cduTotalPatients)
	}

	r.CDUAvgOccupancy = a.CDUSeries.TimeWeightedAverage(horizon)
	r.CDUUtilization = Utilization(r.CDUAvgOccupancy, unitCapacity[domain.UnitCDU])
	r.InpatientAvgOccupancy = a.InpatientSeries.TimeWeightedAverage(horizon)
	r.InpatientUtilization = Utilization(r.InpatientAvgOccupancy, unitCapacity[domain.UnitInpatient])
	r.PulleyAvgOccupancy = a.PulleySeries.TimeWeightedAverage(horizon)
	// Pulley utilization needs the pulley slot capacity, not a unit capacity;
	// callers fill it in with SetPulleyUtilization after Build returns.

	r.AvgTransferTimeToAdmit, _ = mean(a.transferTimeToAdmit)
	r.AvgEDWaitForTransport, _ = mean(a.edWaitForTransport)
	r.TransportCounts = a.transportCounts

	r.ImagingTATOverall, _ = mean(a.imagingTATOverall)
	r.ImagingTATCritical, _ = mean(a.imagingTATCritical)
	r.ImagingTATEDCDUOrigin, _ = mean(a.imagingTATEDCDUOrigin)

	r.AvgPatientSatisfaction, r.AvgPatientSatisfactionKnown = mean(a.satisfaction)

	for _, s := range staff {
		r.TotalNormalCost = r.TotalNormalCost.Add(s.NormalCost)
		r.TotalOvertimeCost = r.TotalOvertimeCost.Add(s.OvertimeCost)
	}
	r.TotalStaffCost = r.TotalNormalCost.Add(r.TotalOvertimeCost)
	r.TotalAmenitiesCost = a.amenitiesCost
	r.TotalAIEntertainmentCost = a.entertainmentCost
	r.TotalHospitalExpenses = r.TotalStaffCost.Add(r.TotalAmenitiesCost).Add(r.TotalAIEntertainmentCost)

	return r
}

// SetPulleyUtilization fills in the pulley utilization percentage against
// the pulley system's slot capacity, which is not a Unit and so cannot be
// passed through unitCapacity.
func (r *Report) SetPulleyUtilization(pulleyCapacity int) {
	r.PulleyUtilization = Utilization(r.PulleyAvgOccupancy, pulleyCapacity)
}
