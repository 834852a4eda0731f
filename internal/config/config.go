// Package config loads the frozen configuration record the engine runs
// against. Loading and validation are ambient concerns (outside the core
// per spec.md §1); the record itself mirrors original_source/zbrain_simulator.py's
// Config class.
package config

import (
	"fmt"

	"github.com/patientflow/edsim/internal/domain"
)

// Range is a uniform duration draw range [Lo, Hi] in minutes.
type Range struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// Roster maps staff type to headcount for one unit.
type Roster map[domain.StaffType]int

// Config is the frozen record handed to the engine at construction. Every
// field here corresponds to a row of spec.md §6's configuration table.
type Config struct {
	Seed int64 `yaml:"seed"`

	SimDays            float64 `yaml:"sim_days"`
	TickIntervalMinutes float64 `yaml:"tick_interval_minutes"`

	PatientArrivalRate float64            `yaml:"patient_arrival_rate"`
	AcuityMix          map[domain.Acuity]float64 `yaml:"acuity_mix"`

	UnitCapacity map[domain.UnitName]int `yaml:"unit_capacity"`
	StaffPerUnit map[domain.UnitName]Roster `yaml:"staff_per_unit"`

	TransportStaffCount          int `yaml:"transport_staff_count"`
	VolunteerTransportStaffCount int `yaml:"volunteer_transport_staff_count"`

	VolunteerHoursStart      float64 `yaml:"volunteer_hours_start"`
	VolunteerHoursEnd        float64 `yaml:"volunteer_hours_end"`
	VolunteerAcuityEligible  []domain.Acuity `yaml:"volunteer_acuity_eligible"`

	PulleyCapacity         int `yaml:"pulley_capacity"`
	PulleyEligibleUnits    []domain.UnitName `yaml:"pulley_eligible_units"`
	PulleyEligibleDests    []domain.UnitName `yaml:"pulley_eligible_destinations"`
	PulleyTransferTime     Range `yaml:"pulley_transfer_time"`

	CDUCriteriaMatch     float64 `yaml:"cdu_criteria_match"`
	CDUObservationTime   Range   `yaml:"cdu_observation_time"`

	EDTriageTime             Range                  `yaml:"ed_triage_time"`
	EDPhysicianAssessmentTime map[domain.Acuity]Range `yaml:"ed_physician_assessment_time"`
	ImagingProcessingTime    map[domain.ImagingModality]Range `yaml:"imaging_processing_time"`
	ImagingReportingTimeRoutine  Range `yaml:"imaging_reporting_time_routine"`
	ImagingReportingTimeCritical Range `yaml:"imaging_reporting_time_critical"`
	LabProcessingTime        Range `yaml:"lab_processing_time"`
	InpatientStayTime        map[domain.Acuity]Range `yaml:"inpatient_stay_time"`
	InpatientCheckInterval   float64 `yaml:"inpatient_check_interval"`
	DischargeProcessTime     Range `yaml:"discharge_process_time"`
	TransferProcessTime      Range `yaml:"transfer_process_time"`
	VolunteerTransferProcessTime Range `yaml:"volunteer_transfer_process_time"`

	// OvertimeMultiplier is carried in the record but not read: cost accrual
	// always uses money.OvertimeMultiplier (1.5).
	OvertimeMultiplier float64 `yaml:"overtime_multiplier"`

	EnableCDU            bool `yaml:"enable_cdu"`
	EnableAIImaging      bool `yaml:"enable_ai_imaging"`
	EnableAIStaffing     bool `yaml:"enable_ai_staffing"`
	EnableAmenities      bool `yaml:"enable_amenities"`
	EnableAIEntertainment bool `yaml:"enable_ai_entertainment"`

	AICriticalReduction     float64 `yaml:"ai_critical_reduction"`
	AIRoutinePrelimReduction float64 `yaml:"ai_routine_prelim_reduction"`
	AIDischargeReduction    float64 `yaml:"ai_discharge_reduction"`

	AmenitiesCostPerVisit      float64 `yaml:"amenities_cost_per_visit"`
	AIEntertainmentMonthlyCost float64 `yaml:"ai_entertainment_monthly_cost"`

	SatisfactionAmenitiesBonus     float64 `yaml:"satisfaction_amenities_bonus"`
	SatisfactionEntertainmentBonus float64 `yaml:"satisfaction_entertainment_bonus"`
}

// Horizon returns the simulated end time in minutes.
func (c Config) Horizon() float64 {
	return c.SimDays * 1440
}

// Validate reports configuration mis-specification. Per spec.md §7 this is
// the caller's responsibility, not the core's.
func (c Config) Validate() error {
	if c.SimDays <= 0 {
		return fmt.Errorf("config: sim_days must be positive, got %v", c.SimDays)
	}
	if c.TickIntervalMinutes <= 0 {
		return fmt.Errorf("config: tick_interval_minutes must be positive, got %v", c.TickIntervalMinutes)
	}
	if c.PatientArrivalRate <= 0 {
		return fmt.Errorf("config: patient_arrival_rate must be positive, got %v", c.PatientArrivalRate)
	}
	if c.UnitCapacity[domain.UnitED] <= 0 {
		return fmt.Errorf("config: ED capacity must be positive, got %v", c.UnitCapacity[domain.UnitED])
	}
	if c.PulleyCapacity < 0 {
		return fmt.Errorf("config: pulley_capacity must be non-negative, got %v", c.PulleyCapacity)
	}
	return nil
}
