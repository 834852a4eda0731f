package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/internal/money"
	"github.com/patientflow/edsim/pkg/messaging"
)

// handleScheduleArrival is the self-refreshing arrival generator: it draws
// the next inter-arrival gap and reschedules itself every tick, independent
// of how many patients it has produced.
func (e *Engine) handleScheduleArrival() {
	next := e.simTime + e.rng.Exponential(e.cfg.PatientArrivalRate)
	if next < e.horizon {
		e.pushNoPatient(next, eventqueue.PatientArrival)
	}
	e.pushNoPatient(e.simTime+e.cfg.TickIntervalMinutes, eventqueue.ScheduleArrival)
}

func (e *Engine) handlePatientArrival() {
	p := domain.NewPatient(e.simTime, e.drawAcuity())
	e.patients[p.ID] = p
	p.Log(e.simTime, "arrived")
	e.notifyPatientEvent(messaging.EventTypePatientArrived, p)

	if e.cfg.EnableAmenities {
		e.acc.AddAmenitiesCost(money.FromAmount(e.cfg.AmenitiesCostPerVisit))
	}

	triageEnd := e.simTime + e.rng.Uniform(e.cfg.EDTriageTime.Lo, e.cfg.EDTriageTime.Hi)
	p.Status = domain.Triaging
	e.pushPatientEvent(triageEnd, eventqueue.TriageComplete, p.ID)
}

func (e *Engine) handleTriageComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	p.Status = domain.EDTriageComplete
	p.Log(e.simTime, "triage complete")
	e.pushPatientEvent(e.simTime, eventqueue.AssignEDBed, p.ID)
}

func (e *Engine) handleAssignEDBed(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	ed := e.unit(domain.UnitED)
	if !ed.HasCapacity() {
		e.setBoardingStartOnFirstMiss(p, e.simTime)
		p.Status = domain.EDWaitForBed
		e.retry(eventqueue.AssignEDBed, p.ID)
		return
	}
	ed.Admit(p.ID)
	p.Status = domain.EDInBed
	p.Log(e.simTime, "ed bed assigned")
	e.pushPatientEvent(e.simTime, eventqueue.PhysicianAssessment, p.ID)
}
