package registry

import (
	"github.com/gogpu/wgpu/core"
)

// TextureRef is a sampleable reference to one of the registry's resident
// textures: a GPU texture id paired with the view used to sample it. The
// ids are left zero-valued until wired to a live device, the same stub
// convention the teacher's GPU texture layer uses while the swapchain
// integration is pending.
type TextureRef struct {
	Texture core.TextureID
	View    core.TextureViewID
}

// Size is the pixel dimensions of a registered external texture.
type Size struct {
	Width, Height int
}

// entry is one external texture's double-buffered state. front and back
// are the two GPU-resident textures the compositor alternates between;
// staging is the CPU-writable surface the host fills via Map/Unmap.
//
// Invariant: isMapped and needsSwap are never both true. A mapped surface
// has not yet been flushed to back, so there is nothing pending to swap;
// once Unmap runs, needsSwap is set and isMapped is cleared.
type entry struct {
	size   Size
	format Format

	front, back TextureRef

	// frontBytes/backBytes mirror the GPU-resident textures' current
	// contents on the CPU so View/Snapshot can be exercised without a
	// live device. stagingBytes is the surface Map returns; on backends
	// where staging and back are the same resource (Metal's shared
	// storage) stagingBytes aliases backBytes directly.
	frontBytes, backBytes, stagingBytes []byte

	isMapped  bool
	needsSwap bool

	// stagingSeparate is false on backends (Metal) where staging and back
	// share one resource; Unmap then need not copy, and swapFrontBack must
	// re-point stagingBytes at the new back so the next Map continues
	// writing the true staging surface.
	stagingSeparate bool
}

func newEntry(size Size, format Format, stagingSeparate bool) *entry {
	n := size.Width * size.Height * format.BytesPerPixel()
	e := &entry{
		size:            size,
		format:          format,
		frontBytes:      make([]byte, n),
		backBytes:       make([]byte, n),
		stagingSeparate: stagingSeparate,
	}
	if stagingSeparate {
		e.stagingBytes = make([]byte, n)
	} else {
		e.stagingBytes = e.backBytes
	}
	return e
}

// swapFrontBack exchanges front and back, including their CPU mirrors and
// TextureRefs, and clears needsSwap. Idempotent when needsSwap is false.
func (e *entry) swapFrontBack() {
	if !e.needsSwap {
		return
	}
	e.front, e.back = e.back, e.front
	e.frontBytes, e.backBytes = e.backBytes, e.frontBytes
	if !e.stagingSeparate {
		e.stagingBytes = e.backBytes
	}
	e.needsSwap = false
}
