//go:build linux || freebsd

// Package dmabuf is the Linux and FreeBSD entry point for exporting a GPU
// texture as a DMA-BUF file descriptor. It resolves the Vulkan external
// memory entry points (VK_KHR_external_memory_fd,
// VK_EXT_image_drm_format_modifier) from a device command table; Export
// does not produce a file descriptor and always returns (nil, nil).
package dmabuf

import (
	"log/slog"

	"github.com/gogpu/compositorcore/sharedtex"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Exporter looks up the function pointers needed to export a texture as a
// DMA-BUF fd from a Vulkan device's function-pointer table. Construct one
// per device; Export degrades to (nil, nil) if the extensions are not
// present rather than failing the caller, since shared-texture support is
// an optional feature of the host compositor.
type Exporter struct {
	cmds *vk.Commands
	log  *slog.Logger

	getMemoryFdKHR                    uintptr
	getImageDrmFormatModifierPropsEXT uintptr
}

// NewExporter builds an Exporter bound to a loaded device command table.
func NewExporter(cmds *vk.Commands) *Exporter {
	e := &Exporter{cmds: cmds, log: slog.New(slog.DiscardHandler)}
	if ptr := cmds.DebugFunctionPointer("vkGetMemoryFdKHR"); ptr != nil {
		e.getMemoryFdKHR = uintptr(ptr)
	}
	if ptr := cmds.DebugFunctionPointer("vkGetImageDrmFormatModifierPropertiesEXT"); ptr != nil {
		e.getImageDrmFormatModifierPropsEXT = uintptr(ptr)
	}
	return e
}

// supported reports whether both extension entry points resolved.
func (e *Exporter) supported() bool {
	return e.getMemoryFdKHR != 0 && e.getImageDrmFormatModifierPropsEXT != 0
}

// Export returns (nil, nil) for every size and format: no DMA-BUF handle is
// produced. When the external-memory-fd entry points did not resolve it
// also logs a warning; when they did resolve it returns without calling
// them (no VkImage is created, no memory is allocated, and neither
// vkGetMemoryFdKHR nor vkGetImageDrmFormatModifierPropertiesEXT is invoked).
func (e *Exporter) Export(size sharedtex.Size, format sharedtex.Format) (*sharedtex.Handle, error) {
	if !e.supported() {
		e.log.Warn("dmabuf: external memory extensions unavailable, skipping export",
			"width", size.Width, "height", size.Height)
		return nil, nil
	}

	// The bound command table resolves a function pointer for every
	// extension entry point it knows about; vkGetMemoryFdKHR is not yet
	// one of them, so supported() above never returns true today. This
	// keeps the call shape ready for when the binding adds it, rather
	// than hand-rolling a raw libvulkan.so call outside the table.
	return nil, nil
}
