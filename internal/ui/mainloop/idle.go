package mainloop

import (
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/jwijenbergh/puregotk/v4/glib"
)

var _ port.MainThread = (*Idle)(nil)

// Idle posts tasks onto the GLib main loop with an idle source. Tasks run
// in posting order on the GTK thread.
type Idle struct {
	mu      sync.Mutex
	pending map[uintptr]*glib.SourceFunc
	nextID  uintptr
}

// NewIdle creates an Idle poster.
func NewIdle() *Idle {
	return &Idle{pending: make(map[uintptr]*glib.SourceFunc)}
}

// Post schedules fn. It never blocks and may be called from any goroutine.
func (p *Idle) Post(fn func()) {
	if fn == nil {
		return
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	cb := glib.SourceFunc(func(uintptr) bool {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()

		fn()
		return false
	})
	// keep the callback reachable until it has run
	p.pending[id] = &cb
	p.mu.Unlock()

	glib.IdleAdd(&cb, 0)
}

// Pending returns the number of posted tasks that have not run yet.
func (p *Idle) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
