package registry

// SoftwareRegistry is a backend-neutral, CPU-only registry implementation
// used in tests and in hosts without a live GPU device. It behaves like
// D3D11Registry (separate staging resource) since that is the stricter of
// the two real backends' contracts. WithDevice is accepted but ignored.
type SoftwareRegistry struct {
	*baseRegistry
}

// NewSoftware creates a CPU-only registry for tests and headless hosts.
func NewSoftware(opts ...Option) *SoftwareRegistry {
	return &SoftwareRegistry{baseRegistry: newBaseRegistry(true, opts)}
}
