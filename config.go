package compositorcore

import (
	"log/slog"

	"github.com/gogpu/compositorcore/eventbus"
	"github.com/gogpu/compositorcore/inputproc"
	"github.com/gogpu/compositorcore/windowqueue"
	"github.com/gogpu/gpucontext"
)

// EventBusConfig mirrors the configuration options the event bus accepts,
// gathered here so a host can set them all in one Config value instead of
// reaching into the eventbus package directly.
type EventBusConfig struct {
	// InitialCapacity is the starting ring size. Defaults to
	// eventbus.InitialCapacity (8192) when zero.
	InitialCapacity int
}

// RegistryConfig mirrors the configuration options the external texture
// registry accepts. The registry's atlas sizing and supported-format set
// are fixed constants (see the registry package) rather than runtime
// knobs, matching the reference design.
type RegistryConfig struct {
	// Backend selects which platform-specific resource semantics new
	// registries should use: "d3d11", "metal", or "software". Empty
	// picks the first backend registry.Select finds available by
	// priority (d3d11, then metal, then software). A name that names no
	// registered backend falls back to the software registry.
	Backend string

	// Device is the host-supplied GPU device the registry's real
	// textures (d3d11/metal backends) are created against. The registry
	// never opens a device itself. Ignored by the software backend.
	Device gpucontext.DeviceProvider
}

// WindowQueueConfig mirrors the configuration the per-window queue registry
// accepts. Initialize wires the default dispatch callback to broadcast
// every input to all windows this policy selects; leave BroadcastPolicy
// nil for the default broadcast-to-all behavior.
type WindowQueueConfig struct {
	// BroadcastPolicy overrides which windows a PostGlobal/default-dispatch
	// event reaches. Nil defaults to windowqueue.BroadcastToAll (focus-based
	// routing is a host concern the default callback does not implement).
	BroadcastPolicy windowqueue.BroadcastPolicy
}

// Config aggregates every subsystem's configuration for a single call to
// Initialize, rather than constructing an eventbus.Bus, inputproc.Processor,
// and registry.Registry by hand.
type Config struct {
	EventBus    EventBusConfig
	Registry    RegistryConfig
	WindowQueue WindowQueueConfig
	Logger      *slog.Logger
}

// windowQueueOptions converts c into windowqueue.Option values.
func (c WindowQueueConfig) windowQueueOptions() []windowqueue.Option {
	if c.BroadcastPolicy == nil {
		return nil
	}
	return []windowqueue.Option{windowqueue.WithBroadcastPolicy(c.BroadcastPolicy)}
}

// eventBusOptions converts c into eventbus.Option values.
func (c EventBusConfig) eventBusOptions(logger *slog.Logger) []eventbus.Option {
	var opts []eventbus.Option
	if c.InitialCapacity > 0 {
		opts = append(opts, eventbus.WithInitialCapacity(c.InitialCapacity))
	}
	if logger != nil {
		opts = append(opts, eventbus.WithLogger(logger))
	}
	return opts
}

// inputProcOptions converts a logger into inputproc.Option values.
func inputProcOptions(logger *slog.Logger) []inputproc.Option {
	if logger == nil {
		return nil
	}
	return []inputproc.Option{inputproc.WithLogger(logger)}
}
