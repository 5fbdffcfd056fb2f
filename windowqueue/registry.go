package windowqueue

import (
	"hash/fnv"
	"sync"
)

// DefaultShardCount is the number of shards the registry splits its window
// map across to reduce lock contention, following the same sharding idiom
// (FNV hash, power-of-two shard count, bitmask shard selection) the
// teacher's sharded cache uses for its hot-path concurrent map.
const DefaultShardCount = 16

const shardMask = DefaultShardCount - 1

// ID is an opaque window identity, supplied by the host (HWND, NSWindow
// pointer, wl_surface id, ...). Registry treats it as an opaque byte
// sequence via its string form.
type ID string

// BroadcastPolicy decides which windows an event posted via Registry.PostGlobal
// reaches. The default policy broadcasts to every registered window; hosts
// that want focus-based routing supply their own.
type BroadcastPolicy func(windows []ID) []ID

// BroadcastToAll is the default BroadcastPolicy: every registered window
// receives the event.
func BroadcastToAll(windows []ID) []ID {
	return windows
}

// Registry maps window identities to their Queue. Registration happens on
// window creation; removal happens when the window is torn down. Lookup
// and post are the hot paths and are sharded to keep them lock-light.
type Registry struct {
	shards [DefaultShardCount]*shard
	policy BroadcastPolicy
}

type shard struct {
	mu      sync.RWMutex
	windows map[ID]*Queue
}

// Option configures a Registry constructed with NewRegistry.
type Option func(*Registry)

// WithBroadcastPolicy overrides the default broadcast-to-all policy.
func WithBroadcastPolicy(policy BroadcastPolicy) Option {
	return func(r *Registry) { r.policy = policy }
}

// NewRegistry creates an empty window registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{policy: BroadcastToAll}
	for i := range r.shards {
		r.shards[i] = &shard{windows: make(map[ID]*Queue)}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) shardFor(id ID) *shard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return r.shards[h.Sum64()&shardMask]
}

// Register creates and registers a new Queue for id, returning it.
// Registering an id that already exists replaces its queue.
func (r *Registry) Register(id ID) *Queue {
	q := NewQueue()
	s := r.shardFor(id)
	s.mu.Lock()
	s.windows[id] = q
	s.mu.Unlock()
	return q
}

// Unregister removes id's queue. Call when the window is destroyed; any
// events still queued are discarded.
func (r *Registry) Unregister(id ID) {
	s := r.shardFor(id)
	s.mu.Lock()
	delete(s.windows, id)
	s.mu.Unlock()
}

// PostForWindow looks up id's queue and posts input to it, non-blocking.
// A send to an unregistered or torn-down window is silently dropped.
func (r *Registry) PostForWindow(id ID, input any) {
	s := r.shardFor(id)
	s.mu.RLock()
	q, ok := s.windows[id]
	s.mu.RUnlock()
	if ok {
		q.Post(input)
	}
}

// PostGlobal posts input to every window selected by the registry's
// BroadcastPolicy (all registered windows, by default).
func (r *Registry) PostGlobal(input any) {
	for _, id := range r.policy(r.windowIDs()) {
		r.PostForWindow(id, input)
	}
}

func (r *Registry) windowIDs() []ID {
	var ids []ID
	for _, s := range r.shards {
		s.mu.RLock()
		for id := range s.windows {
			ids = append(ids, id)
		}
		s.mu.RUnlock()
	}
	return ids
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.windows)
		s.mu.RUnlock()
	}
	return total
}
