// Package debounce runs deferred tasks keyed by field, keeping only the most
// recently scheduled task per key.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays tasks until their key has been quiet for a fixed period.
// Scheduling a task for a key cancels the pending task for that key.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*task
	seq     uint64
	stopped bool
}

type task struct {
	id    uint64
	timer *time.Timer
}

// New creates a Debouncer with the given quiet period.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*task),
	}
}

// Do schedules fn for key, replacing any task still pending for key.
// Returns false when the Debouncer is stopped.
func (d *Debouncer) Do(key string, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	d.seq++
	t := &task{id: d.seq}
	t.timer = time.AfterFunc(d.delay, func() { d.fire(key, t.id, fn) })
	d.pending[key] = t

	return true
}

// fire runs fn only if the task is still the current one for key. A timer that
// already expired when Stop/Do raced with it is discarded here.
func (d *Debouncer) fire(key string, id uint64, fn func()) {
	d.mu.Lock()
	cur, ok := d.pending[key]
	if !ok || cur.id != id || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	fn()
}

// Cancel drops the pending task for key. Reports whether one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.pending[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(d.pending, key)
	return true
}

// Pending reports whether a task is scheduled for key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.pending[key]
	return ok
}

// Stop cancels every pending task. Later calls to Do are rejected.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.pending {
		t.timer.Stop()
		delete(d.pending, key)
	}
}
