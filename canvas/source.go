package canvas

import (
	"sync/atomic"

	"github.com/gogpu/compositorcore/sharedtex"
)

// Source is the producer-facing handle pair a compositor samples at paint
// time: two Shared Texture Handles plus an atomic "active index" selecting
// which one is currently readable. Exactly one index is active at any
// instant; the other is the producer's write target.
//
// Source is shared by reference between the producer thread and the
// compositor thread; a zero Source is not usable, construct with NewSource.
type Source struct {
	active  atomic.Uint32
	buffers [2]sharedtex.Handle
}

// NewSource builds a double-buffered canvas source from two shared texture
// handles. Buffer 0 starts active.
func NewSource(buffer0, buffer1 sharedtex.Handle) *Source {
	s := &Source{buffers: [2]sharedtex.Handle{buffer0, buffer1}}
	s.active.Store(0)
	return s
}

// ActiveBuffer returns the currently active handle, loaded with acquire
// ordering so the compositor observes any pixel writes that
// happened-before the producer's SwapBuffers or SetActiveBuffer.
func (s *Source) ActiveBuffer() sharedtex.Handle {
	idx := s.active.Load()
	return s.buffers[idx%2]
}

// SwapBuffers toggles the active index (xor 1) with release ordering.
// Tolerates multiple concurrent producers calling it — they still each
// toggle the bit — but the intended usage is a single producer; under
// concurrent callers the result can oscillate unpredictably. Use
// SetActiveBuffer for deterministic multi-producer control.
func (s *Source) SwapBuffers() {
	for {
		old := s.active.Load()
		if s.active.CompareAndSwap(old, old^1) {
			return
		}
	}
}

// SetActiveBuffer stores the given index (mod 2) with release ordering.
// This is the deterministic alternative to SwapBuffers when more than one
// writer needs to select the active buffer without a toggle race.
func (s *Source) SetActiveBuffer(index int) {
	s.active.Store(uint32(index) % 2) //nolint:gosec // index is user-supplied, modulo keeps it in range
}

// Buffer returns one of the two underlying handles directly, bypassing the
// active index. Index is taken mod 2.
func (s *Source) Buffer(index int) sharedtex.Handle {
	return s.buffers[index%2]
}
