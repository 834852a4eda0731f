package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/internal/metrics"
	"github.com/patientflow/edsim/internal/money"
)

// Run drives the dispatch loop to completion per spec.md §4.1's four-step
// contract and returns the assembled metrics report.
func (e *Engine) Run() metrics.Report {
	e.seed()

	for {
		ev, ok := e.queue.Pop()
		if !ok {
			break
		}
		if ev.FireTime > e.horizon {
			continue
		}
		e.simTime = ev.FireTime
		e.dispatch(ev)
	}

	e.finalize()

	unitCapacity := make(map[domain.UnitName]int, len(e.units))
	for name, u := range e.units {
		unitCapacity[name] = u.Capacity
	}
	report := e.acc.Build(e.horizon, e.pool.AllStaff(), unitCapacity)
	report.SetPulleyUtilization(e.cfg.PulleyCapacity)
	return report
}

func (e *Engine) seed() {
	e.pushNoPatient(0, eventqueue.ScheduleArrival)
	if e.cfg.EnableCDU {
		e.pushNoPatient(0, eventqueue.CDUOccupancyCheck)
	}
	e.pushNoPatient(0, eventqueue.InpatientOccupancyCheck)
	e.pushNoPatient(0, eventqueue.PulleyUtilizationCheck)
}

// finalize accrues every staff member's in-flight assignment past the
// horizon and prices AI entertainment if enabled, before the report is
// assembled.
func (e *Engine) finalize() {
	for _, s := range e.pool.AllStaff() {
		s.AccrueRemainder(e.horizon)
	}
	if e.cfg.EnableAIEntertainment {
		cost := money.FromAmount((e.cfg.SimDays / 30.0) * e.cfg.AIEntertainmentMonthlyCost)
		e.acc.SetEntertainmentCost(cost)
	}
}

func (e *Engine) dispatch(ev eventqueue.Event) {
	switch ev.Kind {
	case eventqueue.ScheduleArrival:
		e.handleScheduleArrival()
	case eventqueue.PatientArrival:
		e.handlePatientArrival()
	case eventqueue.TriageComplete:
		e.handleTriageComplete(ev)
	case eventqueue.AssignEDBed:
		e.handleAssignEDBed(ev)
	case eventqueue.PhysicianAssessment:
		e.handlePhysicianAssessment(ev)
	case eventqueue.AssessmentComplete:
		e.handleAssessmentComplete(ev)
	case eventqueue.TransferToImaging:
		e.handleTransferToImaging(ev)
	case eventqueue.ImagingTransportComplete:
		e.handleImagingTransportComplete(ev)
	case eventqueue.ImagingStarted:
		e.handleImagingStarted(ev)
	case eventqueue.ImagingComplete:
		e.handleImagingComplete(ev)
	case eventqueue.ImagingReportComplete:
		e.handleImagingReportComplete(ev)
	case eventqueue.TransferToLab:
		e.handleTransferToLab(ev)
	case eventqueue.LabTransportComplete:
		e.handleLabTransportComplete(ev)
	case eventqueue.LabStarted:
		e.handleLabStarted(ev)
	case eventqueue.LabComplete:
		e.handleLabComplete(ev)
	case eventqueue.ReEvaluateAfterDiagnostics:
		e.handleReEvaluateAfterDiagnostics(ev)
	case eventqueue.Disposition:
		e.handleDisposition(ev)
	case eventqueue.AdmitToInpatient:
		e.handleAdmitToInpatient(ev)
	case eventqueue.AdmitToCDU:
		e.handleAdmitToCDU(ev)
	case eventqueue.InpatientTransportComplete:
		e.handleInpatientTransportComplete(ev)
	case eventqueue.CDUTransportComplete:
		e.handleCDUTransportComplete(ev)
	case eventqueue.InpatientPatientCheck:
		e.handleInpatientPatientCheck(ev)
	case eventqueue.CDUObservationComplete:
		e.handleCDUObservationComplete(ev)
	case eventqueue.DischargeOrdered:
		e.handleDischargeOrdered(ev)
	case eventqueue.DischargeProcessComplete:
		e.handleDischargeProcessComplete(ev)
	case eventqueue.CDUOccupancyCheck:
		e.handleCDUOccupancyCheck()
	case eventqueue.InpatientOccupancyCheck:
		e.handleInpatientOccupancyCheck()
	case eventqueue.PulleyUtilizationCheck:
		e.handlePulleyUtilizationCheck()
	}
}
