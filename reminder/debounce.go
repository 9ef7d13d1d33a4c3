package reminder

import (
	"sync"
	"time"
)

type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	fn      func(Snapshot)
	timer   *time.Timer
	pending Snapshot
	seq     uint64
	stopped bool
}

func newDebouncer(window time.Duration, fn func(Snapshot)) *debouncer {
	return &debouncer{window: window, fn: fn}
}

func (d *debouncer) push(snap Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = snap
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(seq) })
}

func (d *debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	snap := d.pending
	d.mu.Unlock()
	d.fn(snap)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
