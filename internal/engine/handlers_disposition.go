package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/internal/metrics"
)

// handleDisposition records ED length-of-stay and satisfaction exactly once,
// then routes the patient by acuity toward inpatient, CDU, or discharge.
func (e *Engine) handleDisposition(ev eventqueue.Event) {
	p, ok := e.patientOf(ev)
	if !ok {
		return
	}
	if !p.Milestones.EDDispositionSet {
		p.Milestones.EDDisposition = e.simTime
		p.Milestones.EDDispositionSet = true

		edLOS := e.simTime - p.ArrivalTime
		e.acc.RecordEDLOS(edLOS)

		sat := metrics.Satisfaction(edLOS, e.cfg.EnableAmenities, e.cfg.EnableAIEntertainment,
			e.cfg.SatisfactionAmenitiesBonus, e.cfg.SatisfactionEntertainmentBonus)
		p.Satisfaction = sat
		p.SatisfactionKnown = true
		e.acc.RecordSatisfaction(sat)
	}

	switch p.Acuity {
	case domain.Critical, domain.UrgentAdmit:
		p.Status = domain.AdmitInpatientPending
		e.pushPatientEvent(e.simTime, eventqueue.AdmitToInpatient, p.ID)
	case domain.UrgentObs:
		if e.cfg.EnableCDU && e.rng.Bernoulli(e.cfg.CDUCriteriaMatch) {
			p.Status = domain.AdmitCDUPending
			e.pushPatientEvent(e.simTime, eventqueue.AdmitToCDU, p.ID)
		} else {
			p.Status = domain.AdmitInpatientPending
			e.pushPatientEvent(e.simTime, eventqueue.AdmitToInpatient, p.ID)
		}
	case domain.NonUrgent:
		if e.cfg.EnableCDU && e.rng.Bernoulli(0.40) {
			p.Status = domain.AdmitCDUPending
			e.pushPatientEvent(e.simTime, eventqueue.AdmitToCDU, p.ID)
		} else {
			p.Status = domain.DischargePendingOrder
			e.pushPatientEvent(e.simTime, eventqueue.DischargeOrdered, p.ID)
		}
	default:
		e.log.Error("disposition: unknown acuity, forcing discharge")
		p.Status = domain.DischargePendingOrder
		e.pushPatientEvent(e.simTime, eventqueue.DischargeOrdered, p.ID)
	}
}
