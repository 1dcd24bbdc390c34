package app

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into one: each Schedule cancels the
// pending single-shot timer and arms a new one, so only the most recent
// task fires. At most one task is outstanding at a time.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arms the timer for fn, canceling any pending task.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel stops any pending task. Safe to call repeatedly, with or without a
// pending task.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
