package eventbus

import "time"

// Envelope wraps a host input event with bus metadata: when it was
// accepted and its globally assigned sequence number.
type Envelope struct {
	Input          any
	Timestamp      time.Time
	SequenceNumber uint64
}
