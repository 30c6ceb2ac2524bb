package plotview

import (
	"sync"
	"time"
)

// Scheduler is the event loop the core runs on. All component state is
// mutated exclusively from scheduler callbacks, which are executed one at a
// time; async work (raster decode) happens off-loop and posts its completion
// back through the scheduler.
//
// The production implementation is RunLoop. Tests substitute a deterministic
// scheduler with a virtual clock.
type Scheduler interface {
	// Post queues fn for execution on the loop.
	Post(fn func())
	// After schedules fn to run on the loop once d has elapsed. The
	// returned timer supports true cancellation.
	After(d time.Duration, fn func()) Timer
	// Now returns the scheduler's notion of the current time. Fetch
	// staleness comparisons use this clock, never time.Now directly, so
	// tests can order responses explicitly.
	Now() time.Time
}

// Timer is a handle to a scheduled callback. Components hold at most one
// timer per concern and always Stop before re-arming; a fired-and-drained
// timer is inert, so Stop after firing is harmless.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from being posted.
	Stop() bool
}

// RunLoop is a single-goroutine Scheduler. It preserves Post ordering and
// never runs two callbacks concurrently.
type RunLoop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
	done   chan struct{}
}

// NewRunLoop creates a RunLoop and starts its goroutine.
func NewRunLoop() *RunLoop {
	l := &RunLoop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *RunLoop) run() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			if l.closed {
				l.mu.Unlock()
				close(l.done)
				return
			}
			l.mu.Unlock()
			<-l.wake
			continue
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()
		fn()
	}
}

// Post queues fn for execution on the loop. Posting to a closed loop is a
// no-op.
func (l *RunLoop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After schedules fn to run on the loop after d.
func (l *RunLoop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.markRun() {
				fn()
			}
		})
	})
	return t
}

// Now returns the wall-clock time.
func (l *RunLoop) Now() time.Time { return time.Now() }

// Close stops the loop once all currently queued callbacks have run.
// Pending timers that fire after Close are dropped.
func (l *RunLoop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}

// loopTimer guards against the window between the stdlib timer firing and
// the posted callback actually running: Stop flips a flag the callback
// checks on the loop, so cancellation is reliable even in that window.
type loopTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	stop  bool
	ran   bool
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop || t.ran {
		return false
	}
	t.stop = true
	t.timer.Stop()
	return true
}

func (t *loopTimer) markRun() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop || t.ran {
		return false
	}
	t.ran = true
	return true
}
