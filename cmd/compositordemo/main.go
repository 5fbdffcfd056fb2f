// Command compositordemo exercises the shared-texture and input-routing
// subsystems end to end: it posts a batch of synthetic input events through
// the event bus and input processor, fans them out to per-window queues,
// and drives one external texture registry entry through a full
// map/unmap/swap/view cycle.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/compositorcore"
	"github.com/gogpu/compositorcore/canvas"
	"github.com/gogpu/compositorcore/eventbus"
	"github.com/gogpu/compositorcore/inputproc"
	"github.com/gogpu/compositorcore/registry"
	"github.com/gogpu/compositorcore/sharedtex"
	"github.com/gogpu/compositorcore/windowqueue"
)

// windowedEvent tags a synthetic input payload with the window it targets,
// the minimal routing envelope a real host would supply.
type windowedEvent struct {
	Window  windowqueue.ID
	Payload string
}

func main() {
	var (
		windows    = flag.Int("windows", 3, "number of demo windows to register")
		events     = flag.Int("events", 2000, "number of synthetic input events to post")
		verbose    = flag.Bool("verbose", false, "emit debug-level logging")
		waitMillis = flag.Int("drain-wait-ms", 500, "milliseconds to wait for the processor to drain")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	compositorcore.SetLogger(logger)

	winRegistry := windowqueue.NewRegistry()
	var windowIDs []windowqueue.ID
	var queues []*windowqueue.Queue
	for i := 0; i < *windows; i++ {
		id := windowqueue.ID(fmt.Sprintf("window-%d", i))
		queues = append(queues, winRegistry.Register(id))
		windowIDs = append(windowIDs, id)
	}

	bus := eventbus.New(eventbus.WithLogger(logger))
	proc := inputproc.New(bus, inputproc.WithLogger(logger))
	proc.SetCallback(func(input any) inputproc.DispatchResult {
		we, ok := input.(windowedEvent)
		if !ok {
			return inputproc.DispatchResult{Propagate: true}
		}
		winRegistry.PostForWindow(we.Window, we.Payload)
		return inputproc.DispatchResult{Propagate: true}
	})
	proc.Start()

	for i := 0; i < *events; i++ {
		target := windowIDs[i%len(windowIDs)]
		if err := bus.Push(windowedEvent{Window: target, Payload: fmt.Sprintf("event-%d", i)}); err != nil {
			logger.Error("event bus overloaded", "error", err)
			break
		}
	}

	time.Sleep(time.Duration(*waitMillis) * time.Millisecond)
	proc.Stop()

	for i, id := range windowIDs {
		drained := queues[i].DrainEvents(*events)
		logger.Info("demo window drained", "window", id, "events", len(drained))
	}

	runTextureRoundTrip(logger)
}

// runTextureRoundTrip registers one external texture, writes a solid red
// frame, swaps it in, then writes green and swaps again, and logs the
// front TextureRef returned by View once both frames are in.
func runTextureRoundTrip(logger *slog.Logger) {
	reg := registry.NewSoftware(registry.WithLogger(logger))

	id, err := reg.Register(registry.Size{Width: 4, Height: 4}, registry.FormatRGBA8)
	if err != nil {
		logger.Error("texture registration failed", "error", err)
		return
	}

	writeSolidColor(reg, id, 255, 0, 0)
	writeSolidColor(reg, id, 0, 255, 0)

	view, err := reg.View(id)
	if err != nil {
		logger.Error("view failed", "error", err)
		return
	}
	logger.Info("texture round trip complete", "texture", view.Texture)

	src := canvas.NewSource(
		sharedtex.Handle{Kind: sharedtex.KindDMABUF, DMABUFFd: 10},
		sharedtex.Handle{Kind: sharedtex.KindDMABUF, DMABUFFd: 20},
	)
	logger.Info("canvas source active buffer", "fd", src.ActiveBuffer().DMABUFFd)
	src.SwapBuffers()
	logger.Info("canvas source active buffer after swap", "fd", src.ActiveBuffer().DMABUFFd)
}

func writeSolidColor(reg *registry.SoftwareRegistry, id registry.ID, r, g, b byte) {
	staging, err := reg.Map(id)
	if err != nil {
		return
	}
	for i := 0; i < len(staging); i += 4 {
		staging[i+0], staging[i+1], staging[i+2], staging[i+3] = r, g, b, 255
	}
	_ = reg.Unmap(id)
	_ = reg.Swap(id)
}
