// Package toast implements the transient notification queue: an ordered
// collection of user-facing messages, each with a bounded lifetime.
package toast

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Type classifies a toast for rendering.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// DefaultTTL is how long a toast stays in the queue before auto-dismissal.
const DefaultTTL = 3 * time.Second

// Toast is a single notification. The ID is assigned by the queue and is
// unique for the queue's lifetime.
type Toast struct {
	ID          string
	Type        Type
	Title       string
	Description string
}

// entry pairs a toast with its owned dismissal timer. The timer is stopped
// explicitly on manual removal so a toast is never dismissed twice.
type entry struct {
	toast Toast
	timer *time.Timer
}

// Queue is the process-wide ordered collection of active toasts.
// Insertion order is preserved so the rendering order is deterministic.
// Queue methods never fail; removal of an unknown id is a silent no-op.
type Queue struct {
	mu          sync.Mutex
	entries     []*entry
	ttl         time.Duration
	capacity    int
	subscribers []func([]Toast)
}

// Option configures a Queue.
type Option func(*Queue)

// WithTTL overrides the auto-dismissal duration.
func WithTTL(d time.Duration) Option {
	return func(q *Queue) { q.ttl = d }
}

// WithCapacity caps the number of concurrent toasts. When full, the oldest
// toast is evicted first so the most recent message stays visible.
func WithCapacity(n int) Option {
	return func(q *Queue) { q.capacity = n }
}

// NewQueue creates an empty toast queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a toast, assigns it a unique id, and arms its dismissal timer.
// The id is returned for callers that want to dismiss early; most ignore it.
// A toast with no type defaults to info.
func (q *Queue) Add(t Toast) string {
	t.ID = ulid.Make().String()
	if t.Type == "" {
		t.Type = TypeInfo
	}

	q.mu.Lock()
	if q.capacity > 0 && len(q.entries) >= q.capacity {
		oldest := q.entries[0]
		oldest.timer.Stop()
		q.entries = q.entries[1:]
	}

	id := t.ID
	q.entries = append(q.entries, &entry{
		toast: t,
		timer: time.AfterFunc(q.ttl, func() { q.Remove(id) }),
	})
	snapshot, subs := q.snapshotLocked()
	q.mu.Unlock()

	notify(subs, snapshot)
	return id
}

// Remove deletes the toast with the given id and cancels its pending timer.
// Removing an absent id is a no-op, which makes the manual-removal vs timer
// race harmless.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	idx := -1
	for i, e := range q.entries {
		if e.toast.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}

	q.entries[idx].timer.Stop()
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	snapshot, subs := q.snapshotLocked()
	q.mu.Unlock()

	notify(subs, snapshot)
}

// Snapshot returns the active toasts in insertion order.
func (q *Queue) Snapshot() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot, _ := q.snapshotLocked()
	return snapshot
}

// Subscribe registers fn to receive the full ordered list on every change.
func (q *Queue) Subscribe(fn func([]Toast)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subscribers = append(q.subscribers, fn)
}

// Close cancels all pending timers and empties the queue. Used at teardown.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		e.timer.Stop()
	}
	q.entries = nil
}

func (q *Queue) snapshotLocked() ([]Toast, []func([]Toast)) {
	snapshot := make([]Toast, len(q.entries))
	for i, e := range q.entries {
		snapshot[i] = e.toast
	}
	subs := make([]func([]Toast), len(q.subscribers))
	copy(subs, q.subscribers)
	return snapshot, subs
}

func notify(subs []func([]Toast), snapshot []Toast) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
