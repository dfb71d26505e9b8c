// Package mainloop schedules work onto the GTK main loop.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks: while a task for a key is
// queued, later posts replace its function instead of queueing again.
// Config reloads use it, since editors often emit several writes per save.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer creates a coalescer over post, usually Idle.Post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post queues fn under key. Only the last fn posted before the queued
// task runs is executed.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, queued := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if queued {
		return
	}
	c.post(func() { c.run(key) })
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if ok && !destroyed {
		fn()
	}
}

// Queued reports whether a task for key is waiting.
func (c *Coalescer) Queued(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.latest[key]
	return ok
}

// Destroy drops queued work and ignores later posts.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
