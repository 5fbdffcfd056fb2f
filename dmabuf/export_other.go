//go:build !linux && !freebsd

package dmabuf

import (
	"github.com/gogpu/compositorcore/sharedtex"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Exporter is a no-op stand-in on platforms that never export DMA-BUF fds
// (Windows uses shared NT handles, macOS uses IOSurface).
type Exporter struct{}

// NewExporter returns an Exporter whose Export always reports unsupported.
func NewExporter(*vk.Commands) *Exporter { return &Exporter{} }

// Export always returns (nil, nil) on this platform.
func (e *Exporter) Export(sharedtex.Size, sharedtex.Format) (*sharedtex.Handle, error) {
	return nil, nil
}
