package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
)

func (e *Engine) handlePhysicianAssessment(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	ed := e.unit(domain.UnitED)
	r := e.cfg.EDPhysicianAssessmentTime[p.Acuity]
	busyUntil := e.simTime + e.rng.Uniform(r.Lo, r.Hi)

	staff, assigned := e.pool.FindAndAssign(domain.Physician, ed, e.simTime, busyUntil, domain.UnitED, "physician_assessment")
	if !assigned {
		p.Status = domain.EDWaitForPhysician
		e.retry(eventqueue.PhysicianAssessment, p.ID)
		return
	}
	p.AssignedStaffID = staff.ID
	p.HasAssignedStaff = true
	p.Status = domain.PhysicianAssessment
	p.Log(e.simTime, "physician assessment started")
	e.pushPatientEvent(busyUntil, eventqueue.AssessmentComplete, p.ID)
}

// handleAssessmentComplete closes out any ED-bed boarding wait, draws the
// independent imaging/lab needs, and routes into whichever diagnostic leg
// applies first — imaging takes priority over lab per the transition table.
func (e *Engine) handleAssessmentComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.recordBoardingIfSet(p, e.simTime)

	p.NeedsImaging = e.rng.Bernoulli(0.3)
	p.NeedsLab = e.rng.Bernoulli(0.4)
	p.Log(e.simTime, "assessment complete")

	switch {
	case p.NeedsImaging:
		p.ImagingType = domain.ImagingModality(e.rng.Choice2(int(domain.CT), int(domain.MRI)))
		p.Milestones.ImagingStart = e.simTime
		p.Milestones.ImagingStartSet = true
		p.OriginUnit = p.CurrentUnit
		p.Status = domain.TransferToImaging
		e.pushPatientEvent(e.simTime, eventqueue.TransferToImaging, p.ID)
	case p.NeedsLab:
		p.Milestones.LabStart = e.simTime
		p.Milestones.LabStartSet = true
		p.OriginUnit = p.CurrentUnit
		p.Status = domain.TransferToLab
		e.pushPatientEvent(e.simTime, eventqueue.TransferToLab, p.ID)
	default:
		e.pushPatientEvent(e.simTime, eventqueue.Disposition, p.ID)
	}
}
