package compositorcore

import (
	"testing"
	"time"

	"github.com/gogpu/compositorcore/windowqueue"
)

func TestInitializeAndShutdown(t *testing.T) {
	core := Initialize(Config{})
	defer Shutdown()

	if core.Bus == nil || core.Processor == nil || core.Windows == nil || core.Textures == nil {
		t.Fatal("Initialize returned a Core with a nil subsystem")
	}
	if Current() != core {
		t.Fatal("Current() does not return the instance Initialize returned")
	}

	Shutdown()
	if Current() != nil {
		t.Fatal("Current() after Shutdown should be nil")
	}
}

func TestInitializeReplacesRunningCore(t *testing.T) {
	first := Initialize(Config{})
	second := Initialize(Config{})
	defer Shutdown()

	if first == second {
		t.Fatal("second Initialize returned the same Core instance")
	}
	if Current() != second {
		t.Fatal("Current() should track the most recent Initialize call")
	}
}

func TestInitializeWiresDefaultBroadcastDispatch(t *testing.T) {
	core := Initialize(Config{})
	defer Shutdown()

	win := windowqueue.ID("window-0")
	queue := core.Windows.Register(win)

	if err := core.Bus.Push("hello"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		if events := queue.DrainEvents(1); len(events) == 1 {
			if events[0].Input != "hello" {
				t.Fatalf("delivered input = %v, want %q", events[0].Input, "hello")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("default broadcast dispatch never delivered the pushed event to the registered window")
		case <-time.After(time.Millisecond):
		}
	}
}
