package widget

import (
	"sync"
	"time"

	"github.com/fwojciec/sitesearch"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search runs.
const DefaultDebounce = 100 * time.Millisecond

// Debouncer runs the most recently scheduled call once no new call has been
// scheduled for the wait period. At most one call is pending at a time.
type Debouncer struct {
	mu    sync.Mutex
	clock sitesearch.Clock
	wait  time.Duration
	timer sitesearch.Timer
	fn    func()

	// running counts calls fired by the clock that have not returned.
	running int
	idle    *sync.Cond
}

// NewDebouncer returns a Debouncer using clock. A nil clock uses the system clock.
func NewDebouncer(clock sitesearch.Clock, wait time.Duration) *Debouncer {
	if clock == nil {
		clock = sitesearch.SystemClock{}
	}
	d := &Debouncer{clock: clock, wait: wait}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Schedule cancels any pending call and schedules f after the wait period.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	var t sitesearch.Timer
	t = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		if d.timer != t {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.fn = nil
		d.running++
		d.mu.Unlock()

		defer d.done()
		f()
	})
	d.timer = t
	d.fn = f
}

// Cancel drops the pending call, if any. It reports whether a call was dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	d.fn = nil
	return stopped
}

func (d *Debouncer) done() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running--
	if d.running == 0 {
		d.idle.Broadcast()
	}
}

// Wait blocks until no call fired by the clock is still running.
func (d *Debouncer) Wait() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.running > 0 {
		d.idle.Wait()
	}
}

// Flush runs the pending call now instead of at its deadline. A call the
// clock already fired is waited for instead. It reports whether a call ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		inFlight := d.running > 0
		for d.running > 0 {
			d.idle.Wait()
		}
		d.mu.Unlock()
		return inFlight
	}
	d.timer.Stop()
	f := d.fn
	d.timer = nil
	d.fn = nil
	d.mu.Unlock()

	f()
	return true
}
