package domain

import "github.com/google/uuid"

// Milestones holds the fixed set of timestamps a patient accumulates across
// the run. A zero value paired with its *Set bool means "not yet reached" —
// Go's float64 zero is a legitimate simulated time, so presence is tracked
// explicitly rather than by sentinel value.
type Milestones struct {
	Arrival           float64
	BoardingStart     float64
	BoardingStartSet  bool
	EDDisposition     float64
	EDDispositionSet  bool
	ImagingStart      float64
	ImagingStartSet   bool
	ImagingResult     float64
	ImagingResultSet  bool
	LabStart          float64
	LabStartSet       bool
	LabResult         float64
	LabResultSet      bool
	DischargeOrder    float64
	DischargeOrderSet bool
	ActualDischarge   float64
	ActualDischgSet   bool
	TransportRequest  float64
	TransportReqSet   bool
	TransportAssigned float64
	TransportAsgnSet  bool
}

// LogEntry is one append-only trace line in a patient's history.
type LogEntry struct {
	Time  float64
	Label string
	Unit  UnitName
}

// Patient is the mutable record the scheduler advances through the state
// machine. It holds only its current unit by name, never a back-pointer to
// the Unit itself, so unit and patient can never form a reference cycle.
type Patient struct {
	ID          uuid.UUID
	ArrivalTime float64
	Acuity      Acuity
	Status      Status
	CurrentUnit UnitName
	OriginUnit  UnitName

	NeedsImaging bool
	ImagingType  ImagingModality
	NeedsLab     bool

	Milestones Milestones
	Events     []LogEntry

	AssignedStaffID uuid.UUID
	HasAssignedStaff bool

	TransportType TransportMode

	Satisfaction      float64
	SatisfactionKnown bool
}

// NewPatient creates a patient arriving at t with the given acuity.
func NewPatient(t float64, acuity Acuity) *Patient {
	return &Patient{
		ID:          uuid.New(),
		ArrivalTime: t,
		Acuity:      acuity,
		Status:      Arrived,
		CurrentUnit: UnitED,
		OriginUnit:  UnitED,
	}
}

// Log appends a trace entry. Called from every transition that changes unit
// or status so the full history is reconstructable after the run.
func (p *Patient) Log(t float64, label string) {
	p.Events = append(p.Events, LogEntry{Time: t, Label: label, Unit: p.CurrentUnit})
}
