package registry

import "github.com/gogpu/gputypes"

// Format is a texture pixel format supported by the external texture
// registry and the glyph/image atlas.
type Format uint8

const (
	// FormatRGBA8 is 8-bit RGBA, the common case.
	FormatRGBA8 Format = iota
	// FormatBGRA8 is 8-bit BGRA, the native surface-presentation order on
	// Windows and macOS.
	FormatBGRA8
	// FormatR8 is single-channel 8-bit, used for monochrome glyph atlases.
	FormatR8
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatR8:
		return "R8"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the pixel stride in bytes for this format.
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

// ToGPUFormat maps the registry's platform-neutral format to the wgpu
// texture format enum, mirroring the teacher's ToWGPUFormat conversion.
func (f Format) ToGPUFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatR8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// validFormat reports whether f is one of the three formats the registry
// accepts; any other value fails registration with ErrUnsupportedFormat.
func validFormat(f Format) bool {
	switch f {
	case FormatRGBA8, FormatBGRA8, FormatR8:
		return true
	default:
		return false
	}
}
