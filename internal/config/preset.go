package config

import (
	"fmt"

	"github.com/patientflow/edsim/internal/domain"
)

// Preset returns a named, complete Config without needing a YAML file on
// disk. Supplements the original simulator's hand-built hospital scenarios
// (Bellevue/Jackson Memorial/Cedars-Sinai-style baseline vs enhanced
// variants) dropped by the distillation into spec.md — see SPEC_FULL.md.
func Preset(name string) (Config, error) {
	switch name {
	case "baseline":
		return baselinePreset(), nil
	case "enhanced":
		c := baselinePreset()
		c.EnableCDU = true
		c.EnableAIImaging = true
		c.EnableAIStaffing = true
		c.EnableAmenities = true
		c.EnableAIEntertainment = true
		return c, nil
	default:
		return Config{}, fmt.Errorf("config: unknown preset %q", name)
	}
}

func baselinePreset() Config {
	return Config{
		Seed:                1,
		SimDays:             7,
		TickIntervalMinutes: 5,
		PatientArrivalRate:  0.5,
		AcuityMix: map[domain.Acuity]float64{
			domain.Critical:     0.10,
			domain.UrgentAdmit:  0.25,
			domain.UrgentObs:    0.30,
			domain.NonUrgent:    0.35,
		},
		UnitCapacity: map[domain.UnitName]int{
			domain.UnitED:         30,
			domain.UnitInpatient:  80,
			domain.UnitCDU:        20,
			domain.UnitImagingCT:  3,
			domain.UnitImagingMRI: 2,
			domain.UnitLab:        5,
			domain.UnitRadiology:  3,
		},
		StaffPerUnit: map[domain.UnitName]Roster{
			domain.UnitED: {
				domain.Physician: 8,
				domain.Nurse:     15,
			},
			domain.UnitImagingCT: {
				domain.Tech: 4,
			},
			domain.UnitImagingMRI: {
				domain.Tech: 3,
			},
			domain.UnitLab: {
				domain.Tech: 4,
			},
			domain.UnitRadiology: {
				domain.Radiologist: 3,
			},
			domain.UnitInpatient: {
				domain.Nurse: 20,
			},
			domain.UnitCDU: {
				domain.Nurse: 8,
			},
		},
		TransportStaffCount:          6,
		VolunteerTransportStaffCount: 4,
		VolunteerHoursStart:          9 * 60,
		VolunteerHoursEnd:            17 * 60,
		VolunteerAcuityEligible:      []domain.Acuity{domain.UrgentObs, domain.NonUrgent},
		PulleyCapacity:               2,
		PulleyEligibleUnits:          []domain.UnitName{domain.UnitED},
		PulleyEligibleDests:          []domain.UnitName{domain.UnitImagingCT, domain.UnitImagingMRI, domain.UnitLab},
		PulleyTransferTime:           Range{Lo: 5, Hi: 10},
		CDUCriteriaMatch:             0.80,
		CDUObservationTime:           Range{Lo: 600, Hi: 1200},
		EDTriageTime:                 Range{Lo: 10, Hi: 30},
		EDPhysicianAssessmentTime: map[domain.Acuity]Range{
			domain.Critical:    {Lo: 20, Hi: 40},
			domain.UrgentAdmit: {Lo: 15, Hi: 30},
			domain.UrgentObs:   {Lo: 10, Hi: 25},
			domain.NonUrgent:   {Lo: 10, Hi: 20},
		},
		ImagingProcessingTime: map[domain.ImagingModality]Range{
			domain.CT:  {Lo: 15, Hi: 30},
			domain.MRI: {Lo: 30, Hi: 60},
		},
		ImagingReportingTimeRoutine:  Range{Lo: 30, Hi: 90},
		ImagingReportingTimeCritical: Range{Lo: 10, Hi: 30},
		LabProcessingTime:            Range{Lo: 30, Hi: 90},
		InpatientStayTime: map[domain.Acuity]Range{
			domain.Critical:    {Lo: 2880, Hi: 7200},
			domain.UrgentAdmit: {Lo: 1440, Hi: 4320},
			domain.UrgentObs:   {Lo: 720, Hi: 2160},
			domain.NonUrgent:   {Lo: 480, Hi: 1440},
		},
		InpatientCheckInterval:        120,
		DischargeProcessTime:          Range{Lo: 90, Hi: 150},
		TransferProcessTime:           Range{Lo: 15, Hi: 30},
		VolunteerTransferProcessTime:  Range{Lo: 20, Hi: 40},
		OvertimeMultiplier:            1.5,
		AICriticalReduction:           0.30,
		AIRoutinePrelimReduction:      0.15,
		AIDischargeReduction:          0.10,
		AmenitiesCostPerVisit:         25,
		AIEntertainmentMonthlyCost:    4000,
		SatisfactionAmenitiesBonus:    10,
		SatisfactionEntertainmentBonus: 15,
	}
}
