package port

import "context"

// RenderHost is the embedded browser surface. Every method must be called
// on the main thread.
type RenderHost interface {
	// EvaluateScript runs script in the main frame. Results are discarded;
	// script errors are logged by the implementation.
	EvaluateScript(ctx context.Context, script string)
	LoadURI(ctx context.Context, uri string) error
	CanGoBack() bool
	GoBack(ctx context.Context) error
	URI() string
}

// MainThread schedules work onto the single thread that owns the render
// host and the UI. Post never blocks and may be called from any goroutine.
type MainThread interface {
	Post(fn func())
}

// MainThreadFunc adapts a function to MainThread.
type MainThreadFunc func(fn func())

// Post calls f(fn).
func (f MainThreadFunc) Post(fn func()) { f(fn) }

// ScriptRunner evaluates a script on the render host from any goroutine,
// hopping to the main thread first.
type ScriptRunner interface {
	Evaluate(ctx context.Context, script string)
}
