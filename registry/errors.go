package registry

import "errors"

var (
	// ErrUnsupportedFormat is returned by Register when the requested pixel
	// format is not one of the three the registry accepts.
	ErrUnsupportedFormat = errors.New("registry: unsupported texture format")

	// ErrNotFound is returned when an operation names an id that has no
	// entry, either because it was never registered or has since been
	// unregistered.
	ErrNotFound = errors.New("registry: texture not found")

	// ErrAlreadyMapped is returned by Map when the entry's staging surface
	// is already mapped by a prior, unmatched Map call.
	ErrAlreadyMapped = errors.New("registry: texture already mapped")

	// ErrNotMapped is returned by Unmap when there is no matching Map call
	// outstanding.
	ErrNotMapped = errors.New("registry: texture not mapped")

	// ErrDeviceLost is returned by operations attempted after the GPU
	// device backing this registry has been lost; the caller must recreate
	// the registry and re-register its external textures.
	ErrDeviceLost = errors.New("registry: device lost")
)
