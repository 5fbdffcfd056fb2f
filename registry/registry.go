// Package registry hosts the toolkit's double-buffered external texture
// registry and its glyph/image atlas: the two resources the compositor
// reads from during paint that are not themselves cross-process shared
// handles (see the sharedtex package for those).
package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/compositorcore/sharedtex"
	"github.com/gogpu/gpucontext"
)

// ID identifies one registered external texture. Opaque to callers.
type ID uint64

// Registry is the operation set exposed for external texture lifecycle
// management: register, map, unmap, swap, view, unregister. Every
// operation is serialized under a per-registry lock; map/unmap/view never
// block on the GPU, so this never stalls the compositor's paint path.
type Registry interface {
	// Register creates front, back, and staging resources sized width x
	// height in format, returning an id for the new entry.
	Register(size Size, format Format) (ID, error)

	// Map returns a writable view of id's staging surface, sized
	// width*height*bytes_per_pixel, and marks the entry mapped. The
	// returned slice is valid until the matching Unmap.
	Map(id ID) ([]byte, error)

	// Unmap flushes staging into back where they are separate resources,
	// clears the mapped flag, and marks a swap pending.
	Unmap(id ID) error

	// Swap exchanges front and back if a swap is pending; a no-op
	// otherwise. Always succeeds for a valid id.
	Swap(id ID) error

	// View returns id's current front texture, the reference the
	// compositor samples during paint.
	View(id ID) (TextureRef, error)

	// Unregister drops all of id's resources. Any outstanding Map on id
	// is a caller error; the entry is removed regardless.
	Unregister(id ID) error

	// Snapshot copies id's current front surface bytes out for readback.
	// Real backends have no such operation (the compositor samples the
	// GPU texture directly); this exists so tests can observe the
	// round-trip without a live device.
	Snapshot(id ID) ([]byte, error)

	// HandleDeviceLost marks every entry in the registry unusable.
	// Subsequent operations return ErrDeviceLost until the host
	// recreates the registry.
	HandleDeviceLost()

	// Resize applies a producer output-surface resize to id. When info.
	// RecreateSharedTexture is set, front/back/staging are rebuilt at the
	// new size (any outstanding Map must be unmapped first); otherwise
	// only the recorded size changes, matching a viewport-only resize
	// with no reallocation.
	Resize(id ID, info sharedtex.ResizeInfo) error
}

// baseRegistry implements Registry; backend constructors (NewD3D11,
// NewMetal, NewSoftware) configure whether staging is a resource separate
// from back and nothing else differs between them at this layer.
type baseRegistry struct {
	mu              sync.Mutex
	entries         map[ID]*entry
	nextID          ID
	stagingSeparate bool
	deviceLost      bool
	log             *slog.Logger

	// device is the host-supplied GPU device this registry's real
	// textures would be created against. Following the same "receive,
	// don't create" integration principle the teacher's render.DeviceHandle
	// documents: the registry never opens a device itself, it only
	// consumes one a host hands it. Stored but unused by SoftwareRegistry.
	device gpucontext.DeviceProvider
}

// Option configures a registry backend constructed with NewD3D11, NewMetal,
// or NewSoftware.
type Option func(*baseRegistry)

// WithLogger sets the logger a registry reports registration, resize and
// device-lost diagnostics to. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *baseRegistry) { r.log = l }
}

// WithDevice binds the registry to a host-supplied GPU device/queue pair.
// D3D11Registry and MetalRegistry accept one so the resource descriptors
// they build (once wired to real GPU calls) target the host's device
// rather than one the registry opens itself; SoftwareRegistry ignores it.
func WithDevice(device gpucontext.DeviceProvider) Option {
	return func(r *baseRegistry) { r.device = device }
}

func newBaseRegistry(stagingSeparate bool, opts []Option) *baseRegistry {
	r := &baseRegistry{
		entries:         make(map[ID]*entry),
		stagingSeparate: stagingSeparate,
		log:             slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *baseRegistry) Register(size Size, format Format) (ID, error) {
	if !validFormat(format) {
		return 0, ErrUnsupportedFormat
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return 0, ErrDeviceLost
	}
	r.nextID++
	id := r.nextID
	r.entries[id] = newEntry(size, format, r.stagingSeparate)
	r.log.Log(context.Background(), slog.LevelDebug, "registry: registered texture",
		"id", id, "width", size.Width, "height", size.Height, "format", format)
	return id, nil
}

func (r *baseRegistry) Map(id ID) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return nil, ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if e.isMapped {
		return nil, ErrAlreadyMapped
	}
	e.isMapped = true
	return e.stagingBytes, nil
}

func (r *baseRegistry) Unmap(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return ErrNotFound
	}
	if !e.isMapped {
		return ErrNotMapped
	}
	if r.stagingSeparate {
		copy(e.backBytes, e.stagingBytes)
	}
	e.isMapped = false
	e.needsSwap = true
	return nil
}

func (r *baseRegistry) Swap(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.swapFrontBack()
	return nil
}

func (r *baseRegistry) View(id ID) (TextureRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return TextureRef{}, ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return TextureRef{}, ErrNotFound
	}
	return e.front, nil
}

func (r *baseRegistry) Unregister(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return ErrDeviceLost
	}
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *baseRegistry) Snapshot(id ID) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return nil, ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.frontBytes))
	copy(out, e.frontBytes)
	return out, nil
}

func (r *baseRegistry) Resize(id ID, info sharedtex.ResizeInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deviceLost {
		return ErrDeviceLost
	}
	e, ok := r.entries[id]
	if !ok {
		return ErrNotFound
	}
	if e.isMapped {
		return ErrAlreadyMapped
	}

	newSize := Size{Width: info.PhysicalSize.Width, Height: info.PhysicalSize.Height}
	if !info.RecreateSharedTexture {
		e.size = newSize
		return nil
	}

	r.entries[id] = newEntry(newSize, e.format, r.stagingSeparate)
	r.log.Log(context.Background(), slog.LevelDebug, "registry: resized texture",
		"id", id, "width", newSize.Width, "height", newSize.Height)
	return nil
}

func (r *baseRegistry) HandleDeviceLost() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deviceLost = true
	r.entries = make(map[ID]*entry)
	r.log.Log(context.Background(), slog.LevelWarn, "registry: device lost, all entries dropped")
}
