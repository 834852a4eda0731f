package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/money"
)

func TestAccumulatorRecordAndBuild(t *testing.T) {
	a := New()
	a.RecordEDLOS(30)
	a.RecordEDLOS(60)
	a.RecordEDBoarding(15)
	a.RecordTotalLOS(500)
	a.RecordTransferTimeToAdmit(12)
	a.RecordEDWaitForTransport(8)
	a.RecordSatisfaction(90)
	a.RecordSatisfaction(70)
	a.RecordImagingTAT(45, true, true)
	a.RecordImagingTAT(20, false, false)
	a.RecordCDUAdmission()
	a.RecordCDUAdmission()
	a.RecordCDUConversion()
	a.RecordTransport(domain.Pulley)
	a.RecordTransport(domain.PaidStaff)
	a.RecordTransport(domain.Pulley)
	a.AddAmenitiesCost(money.FromAmount(25))
	a.AddAmenitiesCost(money.FromAmount(25))
	a.SetEntertainmentCost(money.FromAmount(100))

	s1 := domain.NewStaff(domain.Nurse)
	s1.Assign(0, 60, domain.UnitED, "triage")
	s1.AccrueRemainder(120)

	report := a.Build(120, []*domain.Staff{s1}, map[domain.UnitName]int{domain.UnitCDU: 10, domain.UnitInpatient: 20})
	report.SetPulleyUtilization(2)

	assert.Equal(t, 45.0, report.AvgEDLOS)
	assert.Equal(t, 15.0, report.AvgEDBoarding)
	assert.Equal(t, 500.0, report.AvgTotalHospitalLOS)
	assert.Equal(t, 0.5, report.CDUDischargeRate)
	assert.Equal(t, 12.0, report.AvgTransferTimeToAdmit)
	assert.Equal(t, 8.0, report.AvgEDWaitForTransport)
	assert.Equal(t, 2, report.TransportCounts[domain.Pulley])
	assert.Equal(t, 1, report.TransportCounts[domain.PaidStaff])
	assert.InDelta(t, 32.5, report.ImagingTATOverall, 0.001)
	assert.Equal(t, 45.0, report.ImagingTATCritical)
	assert.Equal(t, 45.0, report.ImagingTATEDCDUOrigin)
	require.True(t, report.AvgPatientSatisfactionKnown)
	assert.Equal(t, 80.0, report.AvgPatientSatisfaction)
	assert.Equal(t, "50.00", report.TotalAmenitiesCost.String())
	assert.Equal(t, "100.00", report.TotalAIEntertainmentCost.String())
	assert.Equal(t, report.TotalStaffCost.Add(report.TotalAmenitiesCost).Add(report.TotalAIEntertainmentCost).String(), report.TotalHospitalExpenses.String())
}

func TestAccumulatorBuildWithNoData(t *testing.T) {
	a := New()
	report := a.Build(100, nil, map[domain.UnitName]int{})

	assert.Equal(t, 0.0, report.AvgEDLOS)
	assert.False(t, report.AvgPatientSatisfactionKnown)
	assert.Equal(t, 0.0, report.CDUDischargeRate)
	assert.Equal(t, money.Zero.String(), report.TotalStaffCost.String())
}

func TestSetPulleyUtilizationAgainstSlotCapacity(t *testing.T) {
	a := New()
	a.PulleySeries.Sample(0, 1)
	report := a.Build(100, nil, map[domain.UnitName]int{})
	report.SetPulleyUtilization(2)

	assert.Equal(t, 50.0, report.PulleyUtilization)
}
