// Package domain holds the closed entity model the scheduler operates on:
// patients, staff, units, and the enumerations that drive routing decisions.
package domain

// Acuity is a patient's triage severity, from most to least urgent.
type Acuity int

const (
	Critical Acuity = iota
	UrgentAdmit
	UrgentObs
	NonUrgent
)

func (a Acuity) String() string {
	switch a {
	case Critical:
		return "CRITICAL"
	case UrgentAdmit:
		return "URGENT_ADMIT"
	case UrgentObs:
		return "URGENT_OBS"
	case NonUrgent:
		return "NON_URGENT"
	default:
		return "UNKNOWN_ACUITY"
	}
}

// Priority ranks acuities by urgency. Lower is more urgent.
func (a Acuity) Priority() int {
	return int(a)
}

// Status is the patient's current position in the state machine. Waiting
// sub-states exist only for metric attribution; they do not add branches to
// the transition table beyond what the handlers already encode.
type Status int

const (
	Arrived Status = iota
	Triaging
	EDTriageComplete
	EDWaitForBed
	EDInBed
	EDWaitForPhysician
	PhysicianAssessment
	TransferToImaging
	ImagingInTransit
	ImagingPending
	ImagingReportPending
	TransferToLab
	LabInTransit
	LabPending
	ReEvaluateAfterDiagnostics
	EDBoarding
	DischargePendingOrder
	DischargeProcessing
	AdmitInpatientPending
	AdmitCDUPending
	InTransitToInpatient
	InTransitToCDU
	InpatientStay
	CDUObservation
	Discharged
)

func (s Status) String() string {
	names := map[Status]string{
		Arrived:                    "ARRIVED",
		Triaging:                   "TRIAGING",
		EDTriageComplete:           "ED_TRIAGE_COMPLETE",
		EDWaitForBed:               "ED_WAIT_FOR_BED",
		EDInBed:                    "ED_IN_BED",
		EDWaitForPhysician:         "ED_WAIT_FOR_PHYSICIAN",
		PhysicianAssessment:        "PHYSICIAN_ASSESSMENT",
		TransferToImaging:          "TRANSFER_TO_IMAGING",
		ImagingInTransit:           "IN_TRANSIT_TO_IMAGING",
		ImagingPending:             "IMAGING_PENDING",
		ImagingReportPending:       "IMAGING_REPORT_PENDING",
		TransferToLab:              "TRANSFER_TO_LAB",
		LabInTransit:               "IN_TRANSIT_TO_LAB",
		LabPending:                 "LAB_PENDING",
		ReEvaluateAfterDiagnostics: "RE_EVALUATE_AFTER_DIAGNOSTICS",
		EDBoarding:                 "ED_BOARDING",
		DischargePendingOrder:      "DISCHARGE_PENDING_ORDER",
		DischargeProcessing:        "DISCHARGE_PROCESSING",
		AdmitInpatientPending:      "ADMIT_INPATIENT_PENDING",
		AdmitCDUPending:            "ADMIT_CDU_PENDING",
		InTransitToInpatient:       "IN_TRANSIT_TO_INPATIENT",
		InTransitToCDU:             "IN_TRANSIT_TO_CDU",
		InpatientStay:              "INPATIENT_STAY",
		CDUObservation:             "CDU_OBSERVATION",
		Discharged:                 "DISCHARGED",
	}
	if n, ok := names[s]; ok {
		return n
	}
	return "UNKNOWN_STATUS"
}

// StaffType is a closed roster category.
type StaffType int

const (
	Physician StaffType = iota
	Nurse
	Tech
	Radiologist
	Transport
	VolunteerTransport
)

// CostPerMinute is the explicit per-staff-type rate lookup the design notes
// call for, replacing a global config singleton attribute lookup.
func CostPerMinute(t StaffType) float64 {
	switch t {
	case Physician:
		return 3.00
	case Nurse:
		return 1.20
	case Tech:
		return 0.80
	case Radiologist:
		return 2.50
	case Transport:
		return 0.60
	case VolunteerTransport:
		return 0.0
	default:
		return 0.0
	}
}

func (t StaffType) String() string {
	switch t {
	case Physician:
		return "PHYSICIAN"
	case Nurse:
		return "NURSE"
	case Tech:
		return "TECH"
	case Radiologist:
		return "RADIOLOGIST"
	case Transport:
		return "TRANSPORT"
	case VolunteerTransport:
		return "VOLUNTEER_TRANSPORT"
	default:
		return "UNKNOWN_STAFF_TYPE"
	}
}

// TransportMode records which tier of the broker served a move, or None if
// the patient has not yet been transported.
type TransportMode int

const (
	NoTransport TransportMode = iota
	Pulley
	PaidStaff
	Volunteer
)

func (m TransportMode) String() string {
	switch m {
	case NoTransport:
		return "NONE"
	case Pulley:
		return "PULLEY"
	case PaidStaff:
		return "PAID_STAFF"
	case Volunteer:
		return "VOLUNTEER"
	default:
		return "UNKNOWN_TRANSPORT_MODE"
	}
}

// ImagingModality is the closed set of diagnostic imaging types.
type ImagingModality int

const (
	NoImaging ImagingModality = iota
	CT
	MRI
)

func (m ImagingModality) String() string {
	switch m {
	case NoImaging:
		return "NONE"
	case CT:
		return "CT"
	case MRI:
		return "MRI"
	default:
		return "UNKNOWN_MODALITY"
	}
}

// UnitName is the closed set of addressable units in the hospital.
type UnitName int

const (
	UnitED UnitName = iota
	UnitInpatient
	UnitCDU
	UnitImagingCT
	UnitImagingMRI
	UnitLab
	UnitRadiology
)

func (u UnitName) String() string {
	switch u {
	case UnitED:
		return "ED"
	case UnitInpatient:
		return "INPATIENT"
	case UnitCDU:
		return "CDU"
	case UnitImagingCT:
		return "IMAGING_CT"
	case UnitImagingMRI:
		return "IMAGING_MRI"
	case UnitLab:
		return "LAB"
	case UnitRadiology:
		return "RADIOLOGY"
	default:
		return "UNKNOWN_UNIT"
	}
}
