package registry

// D3D11Registry is an external texture registry whose entries model D3D11
// resource usage: front and back are BIND_SHADER_RESOURCE | USAGE_DEFAULT
// textures with no CPU access, and staging is a separate USAGE_STAGING |
// CPU_ACCESS_WRITE texture that Unmap copies into back.
type D3D11Registry struct {
	*baseRegistry
}

// NewD3D11 creates a registry backed by D3D11-style resource semantics.
// Pass WithDevice to bind it to a host-supplied GPU device.
func NewD3D11(opts ...Option) *D3D11Registry {
	return &D3D11Registry{baseRegistry: newBaseRegistry(true, opts)}
}
