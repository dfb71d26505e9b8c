// Package headless is a render host without a display: a goja runtime with
// a text-level DOM, driven by a single-consumer task loop. It backs the
// probe command and end-to-end tests of the bridge.
package headless

import (
	"context"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// Compile-time interface check.
var _ port.MainThread = (*Loop)(nil)

// Loop is the headless main thread. Tasks run one at a time on the
// goroutine calling Run, RunUntil or Drain, in posting order.
type Loop struct {
	ctx context.Context

	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

// NewLoop creates a loop; ctx carries the logger for task panics.
func NewLoop(ctx context.Context) *Loop {
	return &Loop{ctx: ctx, wake: make(chan struct{}, 1)}
}

// Post queues fn. It never blocks and may be called from any goroutine,
// including from a running task.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil
	}
	fn := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return fn
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Drain runs queued tasks, including ones posted meanwhile, until the
// queue is empty. It returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for fn := l.next(); fn != nil; fn = l.next() {
		l.run(fn)
		n++
	}
	return n
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(l.ctx).Error().Interface("panic", r).Msg("headless: task panicked")
		}
	}()
	fn()
}

// Run processes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	return l.RunUntil(ctx, func() bool { return false })
}

// RunUntil processes tasks until done reports true after a drain, or ctx
// ends. It returns ctx.Err() in the latter case.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) error {
	for {
		l.Drain()
		if done() {
			return nil
		}
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
