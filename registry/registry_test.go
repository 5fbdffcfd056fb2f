package registry

import (
	"testing"

	"github.com/gogpu/compositorcore/sharedtex"
)

func fillBytes(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func TestRoundTripRedToGreen(t *testing.T) {
	r := NewSoftware()
	id, err := r.Register(Size{Width: 4, Height: 4}, FormatRGBA8)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	staging, err := r.Map(id)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	for i := 0; i < len(staging); i += 4 {
		staging[i+0], staging[i+1], staging[i+2], staging[i+3] = 255, 0, 0, 255
	}
	if err := r.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	if err := r.Swap(id); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	red, err := r.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if red[0] != 255 || red[1] != 0 {
		t.Fatalf("after first swap front = %v, want red", red[:4])
	}

	staging, err = r.Map(id)
	if err != nil {
		t.Fatalf("second Map: %v", err)
	}
	for i := 0; i < len(staging); i += 4 {
		staging[i+0], staging[i+1], staging[i+2], staging[i+3] = 0, 255, 0, 255
	}
	if err := r.Unmap(id); err != nil {
		t.Fatalf("second Unmap: %v", err)
	}
	if err := r.Swap(id); err != nil {
		t.Fatalf("second Swap: %v", err)
	}
	green, err := r.Snapshot(id)
	if err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if green[0] != 0 || green[1] != 255 {
		t.Fatalf("after second swap front = %v, want green", green[:4])
	}
}

func TestViewDuringPendingSwapSeesPreviousFrame(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 2, Height: 2}, FormatRGBA8)

	before, _ := r.Snapshot(id)

	staging, _ := r.Map(id)
	fillBytes(staging, 42)
	if err := r.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}

	after, _ := r.Snapshot(id)
	if string(after) != string(before) {
		t.Fatalf("front changed before swap ran; tearing-avoidance property violated")
	}

	if err := r.Swap(id); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	final, _ := r.Snapshot(id)
	if final[0] != 42 {
		t.Fatalf("front after swap = %v, want filled with 42", final[:4])
	}
}

func TestMapUnmapNeverBothSet(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 1, Height: 1}, FormatR8)

	e := r.entries[id]
	if e.isMapped && e.needsSwap {
		t.Fatal("isMapped and needsSwap both true before any operation")
	}

	if _, err := r.Map(id); err != nil {
		t.Fatalf("Map: %v", err)
	}
	if e.isMapped == e.needsSwap {
		t.Fatalf("after Map: isMapped=%v needsSwap=%v, want exactly one true", e.isMapped, e.needsSwap)
	}

	if err := r.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	if e.isMapped && e.needsSwap {
		t.Fatal("isMapped and needsSwap both true after Unmap")
	}
	if !e.needsSwap {
		t.Fatal("needsSwap not set after Unmap")
	}
}

func TestMapTwiceFails(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 1, Height: 1}, FormatRGBA8)

	if _, err := r.Map(id); err != nil {
		t.Fatalf("first Map: %v", err)
	}
	if _, err := r.Map(id); err != ErrAlreadyMapped {
		t.Fatalf("second Map err = %v, want ErrAlreadyMapped", err)
	}
}

func TestUnmapWithoutMapFails(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 1, Height: 1}, FormatRGBA8)

	if err := r.Unmap(id); err != ErrNotMapped {
		t.Fatalf("Unmap err = %v, want ErrNotMapped", err)
	}
}

func TestSwapIsIdempotent(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 1, Height: 1}, FormatRGBA8)

	if err := r.Swap(id); err != nil {
		t.Fatalf("Swap on fresh entry: %v", err)
	}
	if err := r.Swap(id); err != nil {
		t.Fatalf("second Swap: %v", err)
	}
}

func TestRegisterRejectsUnsupportedFormat(t *testing.T) {
	r := NewSoftware()
	if _, err := r.Register(Size{Width: 1, Height: 1}, Format(99)); err != ErrUnsupportedFormat {
		t.Fatalf("Register err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOperationsOnUnknownIDFail(t *testing.T) {
	r := NewSoftware()
	const bogus ID = 999
	if _, err := r.Map(bogus); err != ErrNotFound {
		t.Fatalf("Map err = %v, want ErrNotFound", err)
	}
	if err := r.Unmap(bogus); err != ErrNotFound {
		t.Fatalf("Unmap err = %v, want ErrNotFound", err)
	}
	if err := r.Swap(bogus); err != ErrNotFound {
		t.Fatalf("Swap err = %v, want ErrNotFound", err)
	}
	if _, err := r.View(bogus); err != ErrNotFound {
		t.Fatalf("View err = %v, want ErrNotFound", err)
	}
}

func TestHandleDeviceLost(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 1, Height: 1}, FormatRGBA8)

	r.HandleDeviceLost()

	if _, err := r.Map(id); err != ErrDeviceLost {
		t.Fatalf("Map after device lost = %v, want ErrDeviceLost", err)
	}
	if _, err := r.Register(Size{Width: 1, Height: 1}, FormatRGBA8); err != ErrDeviceLost {
		t.Fatalf("Register after device lost = %v, want ErrDeviceLost", err)
	}
}

func TestResizeViewportOnlyKeepsBuffers(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 4, Height: 4}, FormatRGBA8)

	staging, _ := r.Map(id)
	fillBytes(staging, 9)
	_ = r.Unmap(id)
	_ = r.Swap(id)

	before, _ := r.Snapshot(id)

	info := sharedtex.ViewportOnlyResize(sharedtex.Size{Width: 8, Height: 8})
	if err := r.Resize(id, info); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	after, _ := r.Snapshot(id)
	if string(after) != string(before) {
		t.Fatal("viewport-only resize altered existing buffer contents")
	}
	if r.entries[id].size.Width != 8 || r.entries[id].size.Height != 8 {
		t.Fatalf("recorded size after viewport-only resize = %+v, want 8x8", r.entries[id].size)
	}
}

func TestResizeRecreateRebuildsBuffers(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 4, Height: 4}, FormatRGBA8)

	staging, _ := r.Map(id)
	fillBytes(staging, 9)
	_ = r.Unmap(id)
	_ = r.Swap(id)

	info := sharedtex.NewResizeInfo(sharedtex.Size{Width: 8, Height: 8})
	if err := r.Resize(id, info); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	snap, err := r.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot after resize: %v", err)
	}
	if len(snap) != 8*8*4 {
		t.Fatalf("len(snapshot) after recreate = %d, want %d", len(snap), 8*8*4)
	}
	for _, b := range snap {
		if b != 0 {
			t.Fatal("recreated buffer should start zeroed, found stale content")
		}
	}
}

func TestResizeFailsWhileMapped(t *testing.T) {
	r := NewSoftware()
	id, _ := r.Register(Size{Width: 2, Height: 2}, FormatRGBA8)
	if _, err := r.Map(id); err != nil {
		t.Fatalf("Map: %v", err)
	}

	info := sharedtex.NewResizeInfo(sharedtex.Size{Width: 4, Height: 4})
	if err := r.Resize(id, info); err != ErrAlreadyMapped {
		t.Fatalf("Resize while mapped err = %v, want ErrAlreadyMapped", err)
	}
}

func TestMetalRegistrySharesStagingAndBack(t *testing.T) {
	r := NewMetal()
	id, _ := r.Register(Size{Width: 2, Height: 2}, FormatRGBA8)

	staging, _ := r.Map(id)
	fillBytes(staging, 7)
	if err := r.Unmap(id); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	if err := r.Swap(id); err != nil {
		t.Fatalf("Swap: %v", err)
	}

	snap, _ := r.Snapshot(id)
	if snap[0] != 7 {
		t.Fatalf("Snapshot after swap = %v, want filled with 7", snap[:4])
	}

	staging2, _ := r.Map(id)
	if &staging2[0] != &r.entries[id].backBytes[0] {
		t.Fatal("Metal staging surface does not alias back, violating shared-storage contract")
	}
}
