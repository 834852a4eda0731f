package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/pkg/messaging"
)

func (e *Engine) handleAdmitToInpatient(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	unit := e.unit(domain.UnitInpatient)
	if !unit.HasCapacity() {
		e.setBoardingStartOnFirstMiss(p, e.simTime)
		p.Status = domain.EDBoarding
		e.retry(eventqueue.AdmitToInpatient, p.ID)
		return
	}
	e.ensureTransportRequested(p, e.simTime)
	dispatch, dispatched := e.broker.Request(e.simTime, p, p.CurrentUnit, domain.UnitInpatient)
	if !dispatched {
		e.retry(eventqueue.AdmitToInpatient, p.ID)
		return
	}
	p.TransportType = dispatch.Mode
	p.Status = domain.InTransitToInpatient
	e.notifyTransportEvent(messaging.EventTypeTransportDispatched, p, domain.UnitInpatient)
	e.push(dispatch.CompleteTime, eventqueue.InpatientTransportComplete, p.ID, true, eventqueue.Payload{Duration: dispatch.CompleteTime - e.simTime})
}

func (e *Engine) handleInpatientTransportComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.recordBoardingIfSet(p, e.simTime)
	e.completeTransportLeg(p, e.simTime, domain.UnitInpatient)
	e.acc.RecordTransferTimeToAdmit(ev.Payload.Duration)
	e.clearTransportRequest(p)

	e.moveTo(p, e.unit(domain.UnitInpatient))
	e.inpatientStart[p.ID] = e.simTime
	p.Status = domain.InpatientStay
	p.Log(e.simTime, "admitted to inpatient")
	e.notifyPatientEvent(messaging.EventTypePatientAdmitted, p)

	r := e.cfg.InpatientStayTime[p.Acuity]
	stay := e.rng.Uniform(r.Lo, r.Hi)
	e.pushPatientEvent(e.simTime+stay, eventqueue.InpatientPatientCheck, p.ID)
	e.pushPatientEvent(e.simTime+e.cfg.InpatientCheckInterval, eventqueue.InpatientPatientCheck, p.ID)
}

// handleInpatientPatientCheck is a no-op if the patient has already moved on
// (discharged, or the other of the pair of checks already ordered discharge).
func (e *Engine) handleInpatientPatientCheck(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	if p.Status != domain.InpatientStay {
		return
	}
	start, tracked := e.inpatientStart[p.ID]
	if !tracked {
		return
	}
	r := e.cfg.InpatientStayTime[p.Acuity]
	elapsed := e.simTime - start
	if elapsed >= r.Lo && e.rng.Bernoulli(0.85) {
		delete(e.inpatientStart, p.ID)
		p.Status = domain.DischargePendingOrder
		e.pushPatientEvent(e.simTime, eventqueue.DischargeOrdered, p.ID)
		return
	}
	e.pushPatientEvent(e.simTime+e.cfg.InpatientCheckInterval, eventqueue.InpatientPatientCheck, p.ID)
}

func (e *Engine) handleAdmitToCDU(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	unit := e.unit(domain.UnitCDU)
	if !unit.HasCapacity() {
		e.setBoardingStartOnFirstMiss(p, e.simTime)
		p.Status = domain.EDBoarding
		e.retry(eventqueue.AdmitToCDU, p.ID)
		return
	}
	e.ensureTransportRequested(p, e.simTime)
	dispatch, dispatched := e.broker.Request(e.simTime, p, p.CurrentUnit, domain.UnitCDU)
	if !dispatched {
		e.retry(eventqueue.AdmitToCDU, p.ID)
		return
	}
	p.TransportType = dispatch.Mode
	p.Status = domain.InTransitToCDU
	e.notifyTransportEvent(messaging.EventTypeTransportDispatched, p, domain.UnitCDU)
	e.push(dispatch.CompleteTime, eventqueue.CDUTransportComplete, p.ID, true, eventqueue.Payload{Duration: dispatch.CompleteTime - e.simTime})
}

func (e *Engine) handleCDUTransportComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.recordBoardingIfSet(p, e.simTime)
	e.completeTransportLeg(p, e.simTime, domain.UnitCDU)
	e.acc.RecordTransferTimeToAdmit(ev.Payload.Duration)
	e.clearTransportRequest(p)

	e.moveTo(p, e.unit(domain.UnitCDU))
	p.Status = domain.CDUObservation
	p.Log(e.simTime, "admitted to cdu")
	e.notifyPatientEvent(messaging.EventTypePatientAdmitted, p)

	r := e.cfg.CDUObservationTime
	obs := e.rng.Uniform(r.Lo, r.Hi)
	e.pushPatientEvent(e.simTime+obs, eventqueue.CDUObservationComplete, p.ID)
}

// handleCDUObservationComplete either converts the stay to a discharge or
// escalates to inpatient admission, per the CDU criteria-match roll.
func (e *Engine) handleCDUObservationComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	if p.Status != domain.CDUObservation {
		return
	}
	e.acc.RecordCDUAdmission()
	if e.rng.Bernoulli(e.cfg.CDUCriteriaMatch) {
		e.acc.RecordCDUConversion()
		p.Status = domain.DischargePendingOrder
		e.pushPatientEvent(e.simTime, eventqueue.DischargeOrdered, p.ID)
		return
	}
	p.Status = domain.AdmitInpatientPending
	e.pushPatientEvent(e.simTime, eventqueue.AdmitToInpatient, p.ID)
}
