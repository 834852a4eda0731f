// Package snapshot publishes a rolling occupancy snapshot to Redis so an
// external dashboard can poll current unit counts without touching the
// simulation process, an ambient concern outside the core per spec.md §1.
// Adapted from internal/portfolio/manager.go's cache-then-Redis pattern,
// simplified to a write-only publisher since nothing in the core ever reads
// the snapshot back.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/pkg/circuit"
)

// Occupancy is one unit's occupancy at a point in simulated time.
type Occupancy struct {
	Unit    string  `json:"unit"`
	Count   int     `json:"count"`
	SimTime float64 `json:"sim_time"`
}

// Publisher keeps an in-memory snapshot and mirrors it to Redis under one
// key per unit, each written with the configured TTL.
type Publisher struct {
	redis   *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker

	mu       sync.RWMutex
	snapshot map[domain.UnitName]Occupancy
}

// New wires a publisher against a Redis address. addr being empty disables
// the Redis round trip entirely; Publish then only updates the in-memory
// snapshot, which is still readable via Latest.
func New(addr string, ttl time.Duration) *Publisher {
	var rdb *redis.Client
	if addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}
	return &Publisher{
		redis: rdb,
		ttl:   ttl,
		breaker: circuit.NewBreaker(circuit.Config{
			Name:        "snapshot.redis",
			MaxFailures: 5,
			Timeout:     10 * time.Second,
			HalfOpenMax: 1,
		}),
		snapshot: make(map[domain.UnitName]Occupancy),
	}
}

// Publish records one unit's occupancy and writes it through to Redis.
// Redis errors are swallowed; the snapshot update never fails.
func (p *Publisher) Publish(ctx context.Context, unit domain.UnitName, simTime float64, count int) {
	occ := Occupancy{Unit: unit.String(), Count: count, SimTime: simTime}

	p.mu.Lock()
	p.snapshot[unit] = occ
	p.mu.Unlock()

	if p.redis == nil {
		return
	}
	payload, err := json.Marshal(occ)
	if err != nil {
		return
	}
	_ = p.breaker.Execute(ctx, func() error {
		return p.redis.Set(ctx, redisKey(unit), payload, p.ttl).Err()
	})
}

// Healthy reports whether the Redis sink is reachable, i.e. its breaker
// isn't open. A Publisher with no Redis address configured is always
// healthy — there's nothing to be unhealthy about.
func (p *Publisher) Healthy() bool {
	if p.redis == nil {
		return true
	}
	return p.breaker.State() != circuit.StateOpen
}

// Latest returns the most recently published occupancy for a unit.
func (p *Publisher) Latest(unit domain.UnitName) (Occupancy, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	occ, ok := p.snapshot[unit]
	return occ, ok
}

// All returns every unit's latest published occupancy.
func (p *Publisher) All() map[domain.UnitName]Occupancy {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[domain.UnitName]Occupancy, len(p.snapshot))
	for k, v := range p.snapshot {
		out[k] = v
	}
	return out
}

// Close releases the Redis client, if one was configured.
func (p *Publisher) Close() error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Close()
}

func redisKey(unit domain.UnitName) string {
	return fmt.Sprintf("edsim:occupancy:%s", unit.String())
}
