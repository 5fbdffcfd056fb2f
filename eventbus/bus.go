// Package eventbus implements the dynamically-expanding lock-free event bus
// that input producer threads push into and the input processor drains in
// batches. Input is not throttled: a full ring is expanded rather than
// overwritten. The only push that is refused is one that would need the
// ring to grow past MaxCapacity (see Overload).
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/compositorcore/ring"
)

// Default and hard-limit capacities, matching the reference sizing: start
// small, double on pressure, never exceed the hard maximum.
const (
	InitialCapacity = 8192
	MaxCapacity     = 1_048_576
)

// Overload is returned by Push when the bus would need to expand the ring
// beyond MaxCapacity. The caller decides whether this is fatal; Bus itself
// never terminates the process.
type Overload struct {
	Capacity int
}

func (e *Overload) Error() string {
	return fmt.Sprintf("eventbus: input overload, capacity %d exceeds maximum %d", e.Capacity, MaxCapacity)
}

// Stats is a point-in-time snapshot of bus counters, used for host-side
// monitoring. Mirrors EventBusStats::current() from the reference
// integration layer.
type Stats struct {
	TotalPushed      uint64
	TotalPopped      uint64
	BufferExpansions uint64
	PushFailures     uint64
	MaxBufferSize    int
	PendingEvents    int
}

// Option configures a Bus constructed with New.
type Option func(*config)

type config struct {
	initialCapacity int
	logger          *slog.Logger
}

// WithInitialCapacity overrides the starting ring capacity (default
// InitialCapacity). Rounded up to a power of two by the underlying ring.
func WithInitialCapacity(capacity int) Option {
	return func(c *config) { c.initialCapacity = capacity }
}

// WithLogger overrides the logger used for expansion/overload diagnostics.
// Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Bus is a multi-buffer event bus with dynamic expansion. When the current
// ring fills, a new ring of double the capacity is allocated, all pending
// events are migrated into it in FIFO order, and the new ring is installed
// — producers and the consumer never observe a gap.
type Bus struct {
	mu      sync.RWMutex
	current *ring.Ring[Envelope]

	sequence atomic.Uint64
	log      *slog.Logger

	totalPushed      atomic.Uint64
	totalPopped      atomic.Uint64
	bufferExpansions atomic.Uint64
	pushFailures     atomic.Uint64
	maxBufferSize    atomic.Uint64
}

// New creates a Bus with InitialCapacity, or the capacity given via
// WithInitialCapacity.
func New(opts ...Option) *Bus {
	cfg := config{initialCapacity: InitialCapacity, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bus{
		current: ring.New[Envelope](cfg.initialCapacity),
		log:     cfg.logger,
	}
	b.maxBufferSize.Store(uint64(b.current.Capacity()))
	return b
}

// Push allocates a sequence number and enqueues input. Never blocks on the
// hot path; if the current ring is full, expands it (which does briefly
// take a writer lock bounded by the previous capacity). Returns
// *Overload if expansion would exceed MaxCapacity — the bus remains usable
// for already-accepted events, but this push was rejected.
func (b *Bus) Push(input any) error {
	seq := b.sequence.Add(1) - 1
	env := Envelope{Input: input, Timestamp: time.Now(), SequenceNumber: seq}

	// The read lock is held across TryPush so an expansion cannot retire
	// the ring between loading it and pushing into it.
	b.mu.RLock()
	pushed := b.current.TryPush(env)
	b.mu.RUnlock()

	if pushed {
		b.totalPushed.Add(1)
		return nil
	}

	return b.expandAndPush(env)
}

func (b *Bus) expandAndPush(env Envelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.current
	if old.TryPush(env) {
		b.totalPushed.Add(1)
		return nil
	}

	oldCapacity := old.Capacity()
	newCapacity := oldCapacity * 2
	if newCapacity > MaxCapacity {
		b.pushFailures.Add(1)
		return &Overload{Capacity: newCapacity}
	}

	next := ring.New[Envelope](newCapacity)
	migrated := 0
	for {
		v, ok := old.TryPop()
		if !ok {
			break
		}
		if !next.TryPush(v) {
			// Can't happen: next has double the capacity and old can hold
			// at most oldCapacity events.
			b.pushFailures.Add(1)
			return &Overload{Capacity: newCapacity}
		}
		migrated++
	}

	if !next.TryPush(env) {
		b.pushFailures.Add(1)
		return &Overload{Capacity: newCapacity}
	}

	b.current = next
	b.bufferExpansions.Add(1)
	b.maxBufferSize.Store(uint64(newCapacity))
	b.totalPushed.Add(1)

	b.log.Info("eventbus: expanded", "from", oldCapacity, "to", newCapacity, "migrated", migrated)
	return nil
}

// TryPopBatch pops up to maxBatchSize events. Never blocks; returns an
// empty slice if the bus is empty.
func (b *Bus) TryPopBatch(maxBatchSize int) []Envelope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := b.current

	events := make([]Envelope, 0, maxBatchSize)
	for i := 0; i < maxBatchSize; i++ {
		v, ok := r.TryPop()
		if !ok {
			break
		}
		events = append(events, v)
		b.totalPopped.Add(1)
	}
	return events
}

// Len returns the approximate number of pending events.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current.Len()
}

// IsEmpty reports whether the bus is (approximately) empty.
func (b *Bus) IsEmpty() bool {
	return b.Len() == 0
}

// Stats returns a snapshot of the bus's observability counters.
func (b *Bus) Stats() Stats {
	return Stats{
		TotalPushed:      b.totalPushed.Load(),
		TotalPopped:      b.totalPopped.Load(),
		BufferExpansions: b.bufferExpansions.Load(),
		PushFailures:     b.pushFailures.Load(),
		MaxBufferSize:    int(b.maxBufferSize.Load()),
		PendingEvents:    b.Len(),
	}
}
