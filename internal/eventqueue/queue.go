// Package eventqueue implements the scheduler's min-heap, keyed on
// (fire_time, sequence) so the dispatcher never compares patients directly —
// see DESIGN.md, grounded on the teacher's pkg/orderbook orderHeap.
package eventqueue

import "container/heap"

// Kind is the closed set of event kinds the dispatcher knows how to handle.
type Kind int

const (
	ScheduleArrival Kind = iota
	PatientArrival
	TriageComplete
	AssignEDBed
	PhysicianAssessment
	AssessmentComplete
	TransferToImaging
	ImagingTransportComplete
	ImagingStarted
	ImagingComplete
	ImagingReportComplete
	TransferToLab
	LabTransportComplete
	LabStarted
	LabComplete
	ReEvaluateAfterDiagnostics
	Disposition
	AdmitToInpatient
	AdmitToCDU
	InpatientTransportComplete
	CDUTransportComplete
	InpatientPatientCheck
	CDUObservationComplete
	DischargeOrdered
	DischargeProcessComplete
	CDUOccupancyCheck
	InpatientOccupancyCheck
	PulleyUtilizationCheck
)

// Payload carries the handful of non-patient-id fields an event needs. It is
// a sum type by convention (only the fields relevant to the event's Kind are
// populated) rather than a generic map, per the design notes.
type Payload struct {
	Duration float64
}

// Event is one scheduled occurrence.
type Event struct {
	FireTime  float64
	Seq       uint64
	Kind      Kind
	HasPatient bool
	PatientID  [16]byte
	Payload    Payload

	index int // heap bookkeeping, unused outside container/heap callbacks
}

type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].FireTime != h[j].FireTime {
		return h[i].FireTime < h[j].FireTime
	}
	return h[i].Seq < h[j].Seq
}

func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *innerHeap) Push(x interface{}) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is the scheduler's priority queue. Not safe for concurrent use —
// only the dispatcher goroutine ever touches it.
type Queue struct {
	h       innerHeap
	nextSeq uint64
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push enqueues e, stamping it with the next insertion sequence so that
// equal fire_time events fire in FIFO order.
func (q *Queue) Push(e Event) {
	e.Seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, &e)
}

// Pop removes and returns the event with the smallest (fire_time, seq). The
// second return is false if the queue is empty.
func (q *Queue) Pop() (Event, bool) {
	if q.h.Len() == 0 {
		return Event{}, false
	}
	e := heap.Pop(&q.h).(*Event)
	return *e, true
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return q.h.Len()
}
