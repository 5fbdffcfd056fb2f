package canvas

import (
	"testing"

	"github.com/gogpu/compositorcore/sharedtex"
)

func dmabufHandle(fd int32) sharedtex.Handle {
	return sharedtex.Handle{Kind: sharedtex.KindDMABUF, DMABUFFd: fd}
}

func TestActiveBufferStartsAtZero(t *testing.T) {
	s := NewSource(dmabufHandle(10), dmabufHandle(20))
	if got := s.ActiveBuffer().DMABUFFd; got != 10 {
		t.Fatalf("ActiveBuffer().DMABUFFd = %d, want 10", got)
	}
}

func TestSwapBuffersAlwaysSelectsTheSibling(t *testing.T) {
	s := NewSource(dmabufHandle(10), dmabufHandle(20))

	s.SwapBuffers()
	if got := s.ActiveBuffer().DMABUFFd; got != 20 {
		t.Fatalf("after first swap ActiveBuffer().DMABUFFd = %d, want 20", got)
	}

	s.SwapBuffers()
	if got := s.ActiveBuffer().DMABUFFd; got != 10 {
		t.Fatalf("after second swap ActiveBuffer().DMABUFFd = %d, want 10", got)
	}
}

func TestSetActiveBufferIsDeterministic(t *testing.T) {
	s := NewSource(dmabufHandle(10), dmabufHandle(20))

	s.SetActiveBuffer(1)
	if got := s.ActiveBuffer().DMABUFFd; got != 20 {
		t.Fatalf("SetActiveBuffer(1) then ActiveBuffer().DMABUFFd = %d, want 20", got)
	}

	s.SetActiveBuffer(0)
	if got := s.ActiveBuffer().DMABUFFd; got != 10 {
		t.Fatalf("SetActiveBuffer(0) then ActiveBuffer().DMABUFFd = %d, want 10", got)
	}
}

func TestBufferIndexingWrapsModTwo(t *testing.T) {
	s := NewSource(dmabufHandle(10), dmabufHandle(20))
	if got := s.Buffer(2).DMABUFFd; got != 10 {
		t.Fatalf("Buffer(2).DMABUFFd = %d, want 10 (wraps to index 0)", got)
	}
}
