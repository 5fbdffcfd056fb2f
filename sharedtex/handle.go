// Package sharedtex defines cross-process GPU texture handles: the
// platform-specific OS primitives (D3D11/D3D12 shared NT handle, macOS
// IOSurface, Linux/FreeBSD DMA-BUF fd) that let two independent GPU
// rendering contexts reference the same underlying device memory without a
// copy.
package sharedtex

import "fmt"

// Kind identifies which platform primitive a Handle carries.
type Kind uint8

const (
	// KindD3D11NTHandle wraps a Windows D3D11/D3D12 shared NT handle.
	KindD3D11NTHandle Kind = iota
	// KindIOSurface wraps a macOS IOSurfaceRef.
	KindIOSurface
	// KindDMABUF wraps a Linux/FreeBSD DMA-BUF file descriptor.
	KindDMABUF
)

// String returns a human-readable name for the handle kind.
func (k Kind) String() string {
	switch k {
	case KindD3D11NTHandle:
		return "D3D11 NT Handle"
	case KindIOSurface:
		return "IOSurface"
	case KindDMABUF:
		return "DMA-BUF"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Format is the pixel format the underlying GPU memory is laid out in.
// Values mirror the DXGI/Metal/Vulkan formats the three backends actually
// use (BGRA8 on Windows/macOS surfaces, commonly RGBA8 or BGRA8 on Linux).
type Format uint32

const (
	FormatRGBA8 Format = iota
	FormatBGRA8
	FormatR8
)

// BytesPerPixel returns the byte stride of a single pixel in this format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8, FormatBGRA8:
		return 4
	case FormatR8:
		return 1
	default:
		return 4
	}
}

// Size is the physical pixel dimensions of a shared texture.
type Size struct {
	Width  int
	Height int
}

// Handle is a cross-platform shared GPU texture handle: a closed tagged
// union over the three OS-level sharing primitives. Exactly one of the
// platform-specific fields is meaningful, selected by Kind.
//
// A Handle does not own GPU memory itself; it is a reference the OS keeps
// alive until Release is called, mirroring the reference-counting rules of
// the underlying primitive (NT handle, IOSurface, or DMA-BUF fd).
type Handle struct {
	Kind Kind
	Size Size

	// NTHandle is the raw Windows HANDLE value, valid when Kind ==
	// KindD3D11NTHandle. Typically a DXGI format such as B8G8R8A8_UNORM.
	NTHandle  uintptr
	DXGIFormat uint32

	// IOSurfaceRef is the raw CFTypeRef pointer value, valid when Kind ==
	// KindIOSurface. MetalFormat is typically MTLPixelFormatBGRA8Unorm.
	IOSurfaceRef uintptr
	MetalFormat  uint32

	// DMABUFFd is the file descriptor, valid when Kind == KindDMABUF.
	// Modifier carries the DRM format modifier (tiling/compression info).
	// Stride is the row pitch in bytes.
	DMABUFFd      int32
	Modifier      uint64
	VulkanFormat  uint32
	Stride        uint32
}

// IsValid reports whether the platform-specific reference inside the
// handle is non-null/non-negative for its Kind.
func (h Handle) IsValid() bool {
	switch h.Kind {
	case KindD3D11NTHandle:
		return h.NTHandle != 0
	case KindIOSurface:
		return h.IOSurfaceRef != 0
	case KindDMABUF:
		return h.DMABUFFd >= 0
	default:
		return false
	}
}

// Format returns the handle's pixel format as a [Format]. Only the DXGI
// format of an NT handle is decoded (R8G8B8A8 and R8, anything else is
// BGRA8); IOSurface and DMA-BUF handles always report FormatBGRA8, without
// inspecting MetalFormat or VulkanFormat.
func (h Handle) Format() Format {
	switch h.Kind {
	case KindD3D11NTHandle:
		switch h.DXGIFormat {
		case dxgiFormatR8G8B8A8Unorm:
			return FormatRGBA8
		case dxgiFormatR8Unorm:
			return FormatR8
		default:
			return FormatBGRA8
		}
	case KindIOSurface:
		return FormatBGRA8
	case KindDMABUF:
		return FormatBGRA8
	default:
		return FormatRGBA8
	}
}

// DXGI_FORMAT values referenced by Handle.Format; kept local rather than
// pulled from a Windows-only package so Format() is callable on every
// platform regardless of which handle kind is in use.
const (
	dxgiFormatR8G8B8A8Unorm = 28
	dxgiFormatB8G8R8A8Unorm = 87
	dxgiFormatR8Unorm       = 61
)

// Release closes the OS-level reference held by the handle: CloseHandle on
// Windows, CFRelease on macOS, close(2) on Linux/FreeBSD. Release is
// idempotent-unsafe like the underlying primitives — call it exactly once.
func (h Handle) Release() error {
	switch h.Kind {
	case KindD3D11NTHandle:
		return releaseNTHandle(h.NTHandle)
	case KindIOSurface:
		return releaseIOSurface(h.IOSurfaceRef)
	case KindDMABUF:
		return releaseDMABUFFd(h.DMABUFFd)
	default:
		return nil
	}
}

// ResizeInfo carries a new physical size for a shared texture and whether
// the handle must be recreated (a genuine resize) versus just re-viewported
// (e.g. letterboxing change with no underlying memory change).
type ResizeInfo struct {
	PhysicalSize        Size
	RecreateSharedTexture bool
}

// NewResizeInfo builds a ResizeInfo that requires recreating the shared
// texture, the common case when a producer's output surface resizes.
func NewResizeInfo(size Size) ResizeInfo {
	return ResizeInfo{PhysicalSize: size, RecreateSharedTexture: true}
}

// ViewportOnlyResize builds a ResizeInfo that only updates the viewport,
// leaving the existing shared texture in place.
func ViewportOnlyResize(size Size) ResizeInfo {
	return ResizeInfo{PhysicalSize: size, RecreateSharedTexture: false}
}
