// Package eventloop implements the cooperative task queue that every run
// executes on. Tasks run one at a time on the goroutine calling Run, in order
// of due time and then of submission.
//
// By default the loop keeps a virtual clock: a task queued with After runs as
// soon as everything due before it has run, and the clock jumps forward to its
// due time. WithRealTime makes the loop wait on the wall clock instead.
package eventloop

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Option func(*Loop)

// Waits on the wall clock for delayed tasks instead of jumping the virtual
// clock forward.
func WithRealTime() Option {
	return func(l *Loop) {
		l.realTime = true
	}
}

// Sets the starting point of the virtual clock.
func WithStartTime(t time.Time) Option {
	return func(l *Loop) {
		l.now = t
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

type Loop struct {
	mu       sync.Mutex
	queue    taskQueue
	seq      uint64
	now      time.Time
	holds    int
	realTime bool
	wake     chan struct{}
	log      *logrus.Logger
}

func New(opts ...Option) *Loop {
	l := &Loop{
		queue: make(taskQueue, 0),
		now:   time.Unix(0, 0).UTC(),
		wake:  make(chan struct{}, 1),
		log:   logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Post implements core.Scheduler. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.After(0, fn)
}

// After implements core.Scheduler. Safe to call from any goroutine.
func (l *Loop) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}

	if d < 0 {
		d = 0
	}

	l.mu.Lock()
	l.seq++
	heap.Push(&l.queue, &task{
		due: l.nowLocked().Add(d),
		seq: l.seq,
		fn:  fn,
	})
	l.mu.Unlock()

	l.signal()
}

// Now implements core.Scheduler.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.nowLocked()
}

// Marks outstanding work that will eventually queue more tasks, such as a
// suspended phase waiting for its continuation. Run does not return while a
// hold is active, even with an empty queue. The returned function releases
// the hold; calling it more than once has no further effect.
func (l *Loop) Hold() (release func()) {
	l.mu.Lock()
	l.holds++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holds--
			l.mu.Unlock()
			l.signal()
		})
	}
}

// Returns the number of queued tasks and active holds.
func (l *Loop) Pending() (tasks int, holds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.queue), l.holds
}

// Runs queued tasks until the queue is empty and no hold is active, or until
// ctx is done. The loop imposes no deadline of its own: a hold that is never
// released keeps Run waiting for as long as ctx allows.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		if len(l.queue) == 0 {
			holds := l.holds
			l.mu.Unlock()

			if holds == 0 {
				return nil
			}

			l.log.Tracef("Event loop idle with %d active holds", holds)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
			}
			continue
		}

		next := l.queue[0]
		if next.due.After(l.nowLocked()) {
			if !l.realTime {
				l.now = next.due
			} else {
				wait := time.Until(next.due)
				l.mu.Unlock()

				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-l.wake:
					timer.Stop()
				case <-timer.C:
				}
				continue
			}
		}

		heap.Pop(&l.queue)
		l.mu.Unlock()

		next.fn()
	}
}

func (l *Loop) nowLocked() time.Time {
	if l.realTime {
		return time.Now()
	}
	return l.now
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

// Min-heap of tasks ordered by due time, then submission order.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) {
	*q = append(*q, x.(*task))
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
