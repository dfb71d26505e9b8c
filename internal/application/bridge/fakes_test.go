package bridge

import (
	"context"
	"sync"
	"sync/atomic"
)

// queueMain is a single-consumer main thread driven by the test.
type queueMain struct {
	mu      sync.Mutex
	tasks   []func()
	running atomic.Bool
}

func (m *queueMain) Post(fn func()) {
	m.mu.Lock()
	m.tasks = append(m.tasks, fn)
	m.mu.Unlock()
}

// drain runs queued tasks, including ones posted while draining.
func (m *queueMain) drain() int {
	n := 0
	for {
		m.mu.Lock()
		if len(m.tasks) == 0 {
			m.mu.Unlock()
			return n
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.mu.Unlock()

		m.running.Store(true)
		task()
		m.running.Store(false)
		n++
	}
}

// fakeHost records evaluated scripts and whether each ran on the main thread.
type fakeHost struct {
	main *queueMain

	mu      sync.Mutex
	scripts []string
	offMain int
}

func (h *fakeHost) EvaluateScript(_ context.Context, src string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.main.running.Load() {
		h.offMain++
	}
	h.scripts = append(h.scripts, src)
}

func (h *fakeHost) LoadURI(context.Context, string) error { return nil }
func (h *fakeHost) CanGoBack() bool                       { return false }
func (h *fakeHost) GoBack(context.Context) error          { return nil }
func (h *fakeHost) URI() string                           { return "" }

func (h *fakeHost) evaluated() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.scripts...)
}
