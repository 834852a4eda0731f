package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/pkg/messaging"
)

func (e *Engine) handleTransferToImaging(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	target := e.imagingUnit(p.ImagingType)
	if !target.HasCapacity() {
		e.retry(eventqueue.TransferToImaging, p.ID)
		return
	}
	e.ensureTransportRequested(p, e.simTime)
	dispatch, dispatched := e.broker.Request(e.simTime, p, p.CurrentUnit, target.Name)
	if !dispatched {
		e.retry(eventqueue.TransferToImaging, p.ID)
		return
	}
	p.TransportType = dispatch.Mode
	p.CurrentUnit = target.Name
	p.Status = domain.ImagingInTransit
	e.notifyTransportEvent(messaging.EventTypeTransportDispatched, p, target.Name)
	e.pushPatientEvent(dispatch.CompleteTime, eventqueue.ImagingTransportComplete, p.ID)
}

func (e *Engine) handleImagingTransportComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.completeTransportLeg(p, e.simTime, p.CurrentUnit)
	e.clearTransportRequest(p)
	e.pushPatientEvent(e.simTime, eventqueue.ImagingStarted, p.ID)
}

func (e *Engine) handleImagingStarted(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	unit := e.imagingUnit(p.ImagingType)
	if !unit.Admit(p.ID) {
		e.retry(eventqueue.ImagingStarted, p.ID)
		return
	}

	duration := e.imagingDuration(p.ImagingType)
	if e.cfg.EnableAIImaging {
		if p.Acuity == domain.Critical {
			duration *= 1 - e.cfg.AICriticalReduction
		} else {
			duration *= 1 - e.cfg.AIRoutinePrelimReduction
		}
	}
	busyUntil := e.simTime + duration

	staff, assigned := e.pool.FindAndAssign(domain.Tech, unit, e.simTime, busyUntil, unit.Name, "imaging")
	if !assigned {
		unit.Discharge(p.ID)
		e.retry(eventqueue.ImagingStarted, p.ID)
		return
	}
	p.AssignedStaffID = staff.ID
	p.HasAssignedStaff = true
	p.Status = domain.ImagingPending
	p.Log(e.simTime, "imaging started")
	e.pushPatientEvent(busyUntil, eventqueue.ImagingComplete, p.ID)
}

func (e *Engine) handleImagingComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.imagingUnit(p.ImagingType).Discharge(p.ID)

	critical := p.Acuity == domain.Critical
	r := e.cfg.ImagingReportingTimeRoutine
	if critical {
		r = e.cfg.ImagingReportingTimeCritical
	}
	duration := e.rng.Uniform(r.Lo, r.Hi)
	if !critical && e.cfg.EnableAIImaging {
		duration *= 1 - e.cfg.AIRoutinePrelimReduction
	}
	busyUntil := e.simTime + duration

	radiology := e.unit(domain.UnitRadiology)
	staff, assigned := e.pool.FindAndAssign(domain.Radiologist, radiology, e.simTime, busyUntil, domain.UnitRadiology, "imaging_report")
	if !assigned {
		e.retry(eventqueue.ImagingComplete, p.ID)
		return
	}
	p.AssignedStaffID = staff.ID
	p.HasAssignedStaff = true
	p.Status = domain.ImagingReportPending
	e.pushPatientEvent(busyUntil, eventqueue.ImagingReportComplete, p.ID)
}

func (e *Engine) handleImagingReportComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	p.Milestones.ImagingResult = e.simTime
	p.Milestones.ImagingResultSet = true

	tat := e.simTime - p.Milestones.ImagingStart
	edOrCDUOrigin := p.OriginUnit == domain.UnitED || p.OriginUnit == domain.UnitCDU
	e.acc.RecordImagingTAT(tat, p.Acuity == domain.Critical, edOrCDUOrigin)

	p.NeedsImaging = false
	p.CurrentUnit = p.OriginUnit
	p.Status = domain.ReEvaluateAfterDiagnostics
	p.Log(e.simTime, "imaging report complete")
	e.pushPatientEvent(e.simTime, eventqueue.ReEvaluateAfterDiagnostics, p.ID)
}

func (e *Engine) handleTransferToLab(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	lab := e.unit(domain.UnitLab)
	if !lab.HasCapacity() {
		e.retry(eventqueue.TransferToLab, p.ID)
		return
	}
	e.ensureTransportRequested(p, e.simTime)
	dispatch, dispatched := e.broker.Request(e.simTime, p, p.CurrentUnit, domain.UnitLab)
	if !dispatched {
		e.retry(eventqueue.TransferToLab, p.ID)
		return
	}
	p.TransportType = dispatch.Mode
	p.CurrentUnit = domain.UnitLab
	p.Status = domain.LabInTransit
	e.notifyTransportEvent(messaging.EventTypeTransportDispatched, p, domain.UnitLab)
	e.pushPatientEvent(dispatch.CompleteTime, eventqueue.LabTransportComplete, p.ID)
}

func (e *Engine) handleLabTransportComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.completeTransportLeg(p, e.simTime, p.CurrentUnit)
	e.clearTransportRequest(p)
	e.pushPatientEvent(e.simTime, eventqueue.LabStarted, p.ID)
}

func (e *Engine) handleLabStarted(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	lab := e.unit(domain.UnitLab)
	if !lab.Admit(p.ID) {
		e.retry(eventqueue.LabStarted, p.ID)
		return
	}
	busyUntil := e.simTime + e.rng.Uniform(e.cfg.LabProcessingTime.Lo, e.cfg.LabProcessingTime.Hi)
	staff, assigned := e.pool.FindAndAssign(domain.Tech, lab, e.simTime, busyUntil, domain.UnitLab, "lab")
	if !assigned {
		lab.Discharge(p.ID)
		e.retry(eventqueue.LabStarted, p.ID)
		return
	}
	p.AssignedStaffID = staff.ID
	p.HasAssignedStaff = true
	p.Status = domain.LabPending
	p.Log(e.simTime, "lab started")
	e.pushPatientEvent(busyUntil, eventqueue.LabComplete, p.ID)
}

func (e *Engine) handleLabComplete(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	e.unit(domain.UnitLab).Discharge(p.ID)
	p.Milestones.LabResult = e.simTime
	p.Milestones.LabResultSet = true
	p.NeedsLab = false
	p.CurrentUnit = p.OriginUnit
	p.Status = domain.ReEvaluateAfterDiagnostics
	p.Log(e.simTime, "lab complete")
	e.pushPatientEvent(e.simTime, eventqueue.ReEvaluateAfterDiagnostics, p.ID)
}

// handleReEvaluateAfterDiagnostics re-enters whichever diagnostic leg is
// still outstanding, or proceeds to disposition once both needs are clear.
func (e *Engine) handleReEvaluateAfterDiagnostics(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	switch {
	case p.NeedsImaging:
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
