package scroller

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler abstracts the clock used for throttling and debouncing.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) Now() time.Time { return time.Now() }

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// throttle runs fn at most once per interval. A call that arrives inside
// the interval schedules one trailing run at the end of it; further calls
// until then are folded into that run.
type throttle struct {
	mu      sync.Mutex
	sched   Scheduler
	limiter *rate.Limiter
	fn      func()
	pending Timer
	gen     int
}

func newThrottle(sched Scheduler, interval time.Duration, fn func()) *throttle {
	return &throttle{
		sched:   sched,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		fn:      fn,
	}
}

// Trigger runs fn now if the interval allows it, otherwise arranges the
// trailing run.
func (t *throttle) Trigger() {
	t.mu.Lock()
	if t.pending != nil {
		t.mu.Unlock()
		return
	}
	now := t.sched.Now()
	r := t.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		gen := t.gen
		t.pending = t.sched.AfterFunc(delay, func() { t.fire(gen) })
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.fn()
}

func (t *throttle) fire(gen int) {
	t.mu.Lock()
	if gen != t.gen || t.pending == nil {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.mu.Unlock()
	t.fn()
}

// Stop cancels a scheduled trailing run.
func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// debouncer runs fn once calls have stopped for the delay.
type debouncer struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	fn      func()
	pending Timer
	gen     int
}

func newDebouncer(sched Scheduler, delay time.Duration, fn func()) *debouncer {
	return &debouncer{sched: sched, delay: delay, fn: fn}
}

// Trigger restarts the quiet period.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *debouncer) fire(gen int) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()
	d.fn()
}

// Stop cancels a pending run.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
