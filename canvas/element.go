package canvas

import "github.com/gogpu/compositorcore/sharedtex"

// Bounds is the layout-space rectangle an Element is painted into. It is a
// minimal stand-in for the host toolkit's own bounds type (element tree
// construction and the layout engine are external collaborators, out of
// scope for this package).
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Style is the subset of layout refinement an Element contributes when
// requesting a layout id: no children, just its own box constraints.
type Style struct {
	Width, Height float64
}

// LayoutHost is implemented by the host toolkit's window/layout engine.
// Element calls RequestLayout during its layout pass and PaintGPUTexture
// during its paint pass; both are the only two toolkit touchpoints this
// package needs.
type LayoutHost interface {
	RequestLayout(style Style) LayoutID
	PaintGPUTexture(bounds Bounds, handle sharedtex.Handle, fit ObjectFit)
}

// LayoutID identifies a layout node produced by a LayoutHost.
type LayoutID uint64

// Element is a stateless leaf in the host's element tree that samples a
// Source's active texture into its layout bounds. It holds no GPU state of
// its own — all texture ownership lives in the Source and, beneath that,
// the registry that produced the handles.
type Element struct {
	source    *Source
	objectFit ObjectFit
	style     Style
}

// New creates a GPU canvas element sampling from source, defaulting to
// ObjectFitContain like the host toolkit's other image-like elements.
func New(source *Source) *Element {
	return &Element{source: source, objectFit: ObjectFitContain}
}

// WithObjectFit sets how the sampled texture fits the element's bounds.
func (e *Element) WithObjectFit(fit ObjectFit) *Element {
	e.objectFit = fit
	return e
}

// RequestLayout produces a layout id for the element's refined style. The
// element has no children.
func (e *Element) RequestLayout(host LayoutHost) LayoutID {
	return host.RequestLayout(e.style)
}

// Prepaint snapshots the currently-active handle from the source so the
// same handle is used across both Prepaint and the subsequent Paint within
// one frame, even if the producer swaps buffers in between.
func (e *Element) Prepaint() sharedtex.Handle {
	return e.source.ActiveBuffer()
}

// Paint hands (bounds, handle, fit) to the host's GPU-texture paint
// primitive. handle must be the value Prepaint returned for this frame.
func (e *Element) Paint(host LayoutHost, bounds Bounds, handle sharedtex.Handle) {
	host.PaintGPUTexture(bounds, handle, e.objectFit)
}
