package engine

import (
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
)

// The three periodic occupancy checks sample their series on the tick
// interval; OccupancySeries.Sample coalesces unchanged samples on its own,
// so re-scheduling on every tick (while the next tick is before the horizon)
// is enough to get a faithful stepwise series without the handler tracking
// "did it change" itself.

func (e *Engine) handleCDUOccupancyCheck() {
	count := e.unit(domain.UnitCDU).Occupancy()
	e.acc.CDUSeries.Sample(e.simTime, count)
	e.notifyOccupancy(domain.UnitCDU, count)
	next := e.simTime + e.cfg.TickIntervalMinutes
	if next < e.horizon {
		e.pushNoPatient(next, eventqueue.CDUOccupancyCheck)
	}
}

func (e *Engine) handleInpatientOccupancyCheck() {
	count := e.unit(domain.UnitInpatient).Occupancy()
	e.acc.InpatientSeries.Sample(e.simTime, count)
	e.notifyOccupancy(domain.UnitInpatient, count)
	next := e.simTime + e.cfg.TickIntervalMinutes
	if next < e.horizon {
		e.pushNoPatient(next, eventqueue.InpatientOccupancyCheck)
	}
}

// The pulley is a shared transport resource, not an addressable UnitName, so
// its utilization has no occupancy-observer analog here.
func (e *Engine) handlePulleyUtilizationCheck() {
	e.acc.PulleySeries.Sample(e.simTime, e.broker.PulleyInUse())
	next := e.simTime + e.cfg.TickIntervalMinutes
	if next < e.horizon {
		e.pushNoPatient(next, eventqueue.PulleyUtilizationCheck)
	}
}
