// Package inputproc runs the dedicated worker thread that drains the event
// bus in batches and dispatches events to a single host callback, separate
// from whatever OS message pump is feeding the bus.
package inputproc

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/compositorcore/eventbus"
)

// BatchSize is the maximum number of events drained per loop iteration.
const BatchSize = 64

// IdleSpinThreshold is the number of consecutive empty iterations the loop
// spins through before switching to sleeping between polls.
const IdleSpinThreshold = 10

// IdleSleep is the backoff duration once the loop has been idle past
// IdleSpinThreshold iterations.
const IdleSleep = 100 * time.Microsecond

// DispatchResult is returned by a DispatchFunc to tell the host how to
// continue handling the input: whether it should keep propagating to
// further handlers, and whether a default action should be suppressed.
type DispatchResult struct {
	Propagate        bool
	DefaultPrevented bool
}

// DispatchFunc receives one input value at a time, in the order the bus
// accepted them, and reports how the host should continue handling it. It
// is never called concurrently with itself.
type DispatchFunc func(input any) DispatchResult

// Processor drains a [eventbus.Bus] on a dedicated goroutine with adaptive
// backoff: it spins briefly while busy and sleeps once genuinely idle, so
// it bounds both dispatch latency under load and CPU burn while idle.
type Processor struct {
	bus      *eventbus.Bus
	callback DispatchFunc
	log      *slog.Logger

	running atomic.Bool
	mu      sync.Mutex // guards callback
	done    chan struct{}
}

// Option configures a Processor constructed with New.
type Option func(*Processor)

// WithLogger overrides the logger used for start/stop lifecycle messages.
// Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// New creates a Processor over bus. SetCallback must be called before
// Start for events to actually be dispatched.
func New(bus *eventbus.Bus, opts ...Option) *Processor {
	p := &Processor{bus: bus, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetCallback installs the dispatch callback. Safe to call before Start;
// calling it while running replaces the callback for the next batch.
func (p *Processor) SetCallback(cb DispatchFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callback = cb
}

// Start spawns the processing goroutine. A second call while already
// running is a no-op.
func (p *Processor) Start() {
	if !p.running.CompareAndSwap(false, true) {
		p.log.Warn("inputproc: already running")
		return
	}

	p.done = make(chan struct{})
	go p.runLoop(p.done)

	p.log.Info("inputproc: started")
}

// Stop signals the processing goroutine to exit and blocks until it has.
// Stop is safe to call when not running.
func (p *Processor) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	<-p.done
	p.log.Info("inputproc: stopped")
}

func (p *Processor) runLoop(done chan struct{}) {
	defer close(done)

	idleIterations := 0
	var processed uint64

	for p.running.Load() {
		events := p.bus.TryPopBatch(BatchSize)

		if len(events) == 0 {
			idleIterations++
			if idleIterations > IdleSpinThreshold {
				time.Sleep(IdleSleep)
			} else {
				runtime.Gosched()
			}
			continue
		}

		idleIterations = 0

		p.mu.Lock()
		cb := p.callback
		p.mu.Unlock()

		// The DispatchResult each call returns is the host's affair once
		// an event reaches a handler chain; delivery in order is this
		// loop's only job, so the result itself is discarded here.
		if cb != nil {
			for _, e := range events {
				cb(e.Input)
				processed++
			}
		}
	}

	p.log.Debug("inputproc: exiting", "processed", processed)
}
