package eventbus

import "testing"

func TestPushPopSequenceNumbers(t *testing.T) {
	b := New()

	if err := b.Push("a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Push("b"); err != nil {
		t.Fatal(err)
	}

	events := b.TryPopBatch(10)
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].SequenceNumber != 0 || events[1].SequenceNumber != 1 {
		t.Fatalf("sequence numbers = %d, %d, want 0, 1", events[0].SequenceNumber, events[1].SequenceNumber)
	}
}

func TestExpansion(t *testing.T) {
	b := New()

	const extra = 100
	total := InitialCapacity + extra
	for i := 0; i < total; i++ {
		if err := b.Push(i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	if got := b.Len(); got != total {
		t.Fatalf("Len() = %d, want %d", got, total)
	}
	if b.Stats().BufferExpansions == 0 {
		t.Fatal("expected at least one buffer expansion")
	}

	count := 0
	var lastSeq uint64
	first := true
	for !b.IsEmpty() {
		events := b.TryPopBatch(100)
		if len(events) == 0 {
			break
		}
		for _, e := range events {
			if !first && e.SequenceNumber != lastSeq+1 {
				t.Fatalf("sequence gap: %d after %d", e.SequenceNumber, lastSeq)
			}
			lastSeq = e.SequenceNumber
			first = false
			count++
		}
	}

	if count != total {
		t.Fatalf("drained %d events, want %d", count, total)
	}
}

func TestSequenceNumbersStrictlyIncreasingGapFree(t *testing.T) {
	b := New(WithInitialCapacity(4))

	for i := 0; i < 50; i++ {
		if err := b.Push(i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	events := b.TryPopBatch(50)
	if len(events) != 50 {
		t.Fatalf("len(events) = %d, want 50", len(events))
	}
	for i, e := range events {
		if e.SequenceNumber != uint64(i) {
			t.Fatalf("events[%d].SequenceNumber = %d, want %d", i, e.SequenceNumber, i)
		}
	}
}
