package compositorcore

import (
	"log/slog"
	"sync"

	"github.com/gogpu/compositorcore/eventbus"
	"github.com/gogpu/compositorcore/inputproc"
	"github.com/gogpu/compositorcore/registry"
	"github.com/gogpu/compositorcore/windowqueue"
)

// Core bundles the subsystems a host needs to present externally-rendered
// GPU content and route input to it: the event bus producers push into,
// the input processor draining it, the per-window queue registry input
// ultimately lands in, and the external texture registry the compositor
// samples during paint.
type Core struct {
	Bus       *eventbus.Bus
	Processor *inputproc.Processor
	Windows   *windowqueue.Registry
	Textures  registry.Registry
}

var (
	initMu  sync.Mutex
	current *Core
)

// Initialize builds a Core from cfg and installs it as the process-wide
// instance returned by Current. Calling Initialize again after Shutdown
// is the expected way to recover from a lost GPU device; calling it
// without an intervening Shutdown replaces the running instance after
// stopping the old one.
func Initialize(cfg Config) *Core {
	initMu.Lock()
	defer initMu.Unlock()

	logger := cfg.Logger
	if logger != nil {
		SetLogger(logger)
	} else {
		logger = Logger()
	}

	if current != nil {
		current.Processor.Stop()
	}

	bus := eventbus.New(cfg.EventBus.eventBusOptions(logger)...)
	proc := inputproc.New(bus, inputProcOptions(logger)...)
	windows := windowqueue.NewRegistry(cfg.WindowQueue.windowQueueOptions()...)
	textures := newRegistryBackend(cfg.Registry, logger)

	// Default dispatch is a broadcast to every window windows' policy
	// selects (windowqueue.BroadcastToAll unless cfg.WindowQueue.
	// BroadcastPolicy overrides it). A host that wants different routing
	// entirely can replace this with its own proc.SetCallback after
	// Initialize returns.
	proc.SetCallback(func(input any) inputproc.DispatchResult {
		windows.PostGlobal(input)
		return inputproc.DispatchResult{Propagate: true}
	})

	core := &Core{Bus: bus, Processor: proc, Windows: windows, Textures: textures}
	proc.Start()

	current = core
	return core
}

// Current returns the Core installed by the last call to Initialize, or
// nil if Initialize has not been called.
func Current() *Core {
	initMu.Lock()
	defer initMu.Unlock()
	return current
}

// Shutdown stops the running Core's input processor and clears Current.
// Safe to call when no Core is installed.
func Shutdown() {
	initMu.Lock()
	defer initMu.Unlock()
	if current == nil {
		return
	}
	current.Processor.Stop()
	current = nil
}

// newRegistryBackend picks a registry.Registry implementation by name via
// registry.Select, falling back to the CPU-only software backend if cfg.
// Backend names a backend that was never registered.
func newRegistryBackend(cfg RegistryConfig, logger *slog.Logger) registry.Registry {
	var opts []registry.Option
	if logger != nil {
		opts = append(opts, registry.WithLogger(logger))
	}
	if cfg.Device != nil {
		opts = append(opts, registry.WithDevice(cfg.Device))
	}

	if r := registry.Select(cfg.Backend, opts...); r != nil {
		return r
	}
	return registry.NewSoftware(opts...)
}
