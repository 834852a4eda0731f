// Package live broadcasts occupancy and patient-transition updates to
// WebSocket subscribers as the simulation runs, an ambient concern outside
// the core per spec.md §1. Adapted from internal/market/feed.go's
// subscriber-map-plus-update-channel shape, narrowed to the one-way
// broadcast this domain needs — nothing here subscribes back into the sim.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/patientflow/edsim/internal/domain"
)

// Update is one broadcastable event: an occupancy sample or a patient status
// transition, distinguished by Type.
type Update struct {
	Type      string    `json:"type"`
	Unit      string    `json:"unit,omitempty"`
	Count     int       `json:"count,omitempty"`
	PatientID string    `json:"patient_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	SimTime   float64   `json:"sim_time"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	UpdateOccupancy       = "occupancy"
	UpdatePatientTransition = "patient_transition"
)

// Subscriber is one connected WebSocket client.
type Subscriber struct {
	ID      uuid.UUID
	Conn    *websocket.Conn
	Updates chan Update
	Done    chan struct{}
}

// Feed fans updates out to every connected subscriber. A nil-safe zero
// value still compiles but Broadcast is only useful after Start.
type Feed struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*Subscriber

	updates  chan Update
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewFeed constructs an empty feed. Call Start before Broadcast to actually
// fan updates out; Broadcast alone just buffers into the internal channel.
func NewFeed() *Feed {
	return &Feed{
		subscribers: make(map[uuid.UUID]*Subscriber),
		updates:     make(chan Update, 256),
		shutdown:    make(chan struct{}),
	}
}

// Start runs the dispatch loop that drains Broadcast calls out to
// subscribers. Call once; Stop ends the loop.
func (f *Feed) Start(ctx context.Context) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for {
			select {
			case update := <-f.updates:
				f.fanOut(update)
			case <-f.shutdown:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the dispatch loop and waits for it to drain.
func (f *Feed) Stop() {
	close(f.shutdown)
	f.wg.Wait()
}

// Broadcast queues an update for delivery to every subscriber. Never
// blocks: a full queue drops the update rather than stalling the caller,
// since the caller here is the simulation's own dispatch loop.
func (f *Feed) Broadcast(u Update) {
	select {
	case f.updates <- u:
	default:
	}
}

// BroadcastOccupancy is a convenience wrapper for the common case.
func (f *Feed) BroadcastOccupancy(unit domain.UnitName, simTime float64, count int) {
	f.Broadcast(Update{
		Type:      UpdateOccupancy,
		Unit:      unit.String(),
		Count:     count,
		SimTime:   simTime,
		Timestamp: time.Now(),
	})
}

// BroadcastPatientTransition is a convenience wrapper for status-change
// events.
func (f *Feed) BroadcastPatientTransition(patientID string, status domain.Status, simTime float64) {
	f.Broadcast(Update{
		Type:      UpdatePatientTransition,
		PatientID: patientID,
		Status:    status.String(),
		SimTime:   simTime,
		Timestamp: time.Now(),
	})
}

// Subscribe registers a new subscriber and returns its handle.
func (f *Feed) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:      uuid.New(),
		Updates: make(chan Update, 32),
		Done:    make(chan struct{}),
	}
	f.mu.Lock()
	f.subscribers[sub.ID] = sub
	f.mu.Unlock()
	return sub
}

// Unsubscribe removes and tears down a subscriber.
func (f *Feed) Unsubscribe(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subscribers[id]; ok {
		close(sub.Done)
		delete(f.subscribers, id)
	}
}

func (f *Feed) fanOut(u Update) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, sub := range f.subscribers {
		select {
		case sub.Updates <- u:
		case <-sub.Done:
		default:
			// Subscriber too slow to keep up; drop rather than block the feed.
		}
	}
}

// ServeWS upgrades conn to the subscriber's write loop, blocking until the
// connection closes or ctx is cancelled.
func (f *Feed) ServeWS(ctx context.Context, conn *websocket.Conn) {
	sub := f.Subscribe()
	sub.Conn = conn
	defer func() {
		f.Unsubscribe(sub.ID)
		conn.Close()
	}()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.Unsubscribe(sub.ID)
				return
			}
		}
	}()

	for {
		select {
		case update := <-sub.Updates:
			data, err := json.Marshal(update)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-sub.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}
