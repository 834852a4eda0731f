package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/pkg/messaging"
)

func (e *Engine) handleDischargeOrdered(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	if !p.Milestones.DischargeOrderSet {
		p.Milestones.DischargeOrder = e.simTime
		p.Milestones.DischargeOrderSet = true
	}

	duration := e.rng.Uniform(e.cfg.DischargeProcessTime.Lo, e.cfg.DischargeProcessTime.Hi)
	if e.cfg.EnableAIStaffing {
		duration *= 1 - e.cfg.AIDischargeReduction
	}
	busyUntil := e.simTime + duration

	unit := e.unit(p.CurrentUnit)
	staff, assigned := e.pool.FindAndAssign(domain.Nurse, unit, e.simTime, busyUntil, unit.Name, "discharge")
	if !assigned {
		e.retry(eventqueue.DischargeOrdered, p.ID)
		return
	}
	p.AssignedStaffID = staff.ID
	p.HasAssignedStaff = true
	p.Status = domain.DischargeProcessing
	p.Log(e.simTime, "discharge ordered")
	e.pushPatientEvent(busyUntil, eventqueue.DischargeProcessComplete, p.ID)
}

func (e *Engine) handleDischargeProcessComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.unit(p.CurrentUnit).Discharge(p.ID)
	p.Milestones.ActualDischarge = e.simTime
	p.Milestones.ActualDischgSet = true
	p.Status = domain.Discharged
	p.Log(e.simTime, "discharged")
	e.notifyPatientEvent(messaging.EventTypePatientDischarged, p)

	e.acc.RecordTotalLOS(e.simTime - p.ArrivalTime)
}
