// Package bridge connects the hosted page to native operations: Bridge
// decodes and runs envelopes, Dispatcher carries results back to script on
// the main thread.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/bnema/webshell/internal/logging"
)

// ErrNoPendingCall is returned by Respond when callbackID has no call in
// flight, including when it was already answered.
var ErrNoPendingCall = errors.New("no pending call for callback id")

var (
	_ port.ScriptRunner = (*Dispatcher)(nil)
	_ port.EventEmitter = (*Dispatcher)(nil)
)

// Dispatcher serializes native results into script calls. Every render
// host touch is posted to the main thread, so its methods are safe from
// any goroutine.
type Dispatcher struct {
	host port.RenderHost
	main port.MainThread

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDispatcher creates a dispatcher evaluating on host through main.
func NewDispatcher(host port.RenderHost, main port.MainThread) *Dispatcher {
	return &Dispatcher{
		host:    host,
		main:    main,
		pending: make(map[string]struct{}),
	}
}

// Evaluate posts script to the main thread. It implements port.ScriptRunner.
func (d *Dispatcher) Evaluate(ctx context.Context, src string) {
	d.main.Post(func() {
		d.host.EvaluateScript(ctx, src)
	})
}

// Begin registers callbackID as awaiting a response. It returns false when
// the id is empty or already in flight.
func (d *Dispatcher) Begin(callbackID string) bool {
	if callbackID == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[callbackID]; ok {
		return false
	}
	d.pending[callbackID] = struct{}{}
	return true
}

// Pending reports how many calls await a response.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Dispatcher) complete(callbackID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[callbackID]; !ok {
		return false
	}
	delete(d.pending, callbackID)
	return true
}

// Abandon drops callbackID without answering it. Used when the work behind
// a call is cancelled; the caller applies its own timeout.
func (d *Dispatcher) Abandon(callbackID string) {
	d.complete(callbackID)
}

// Respond delivers payload to onNativeResponse(callbackID, json). An empty
// id is a no-op. Each begun id is answered at most once.
func (d *Dispatcher) Respond(ctx context.Context, callbackID string, payload any) error {
	if callbackID == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if !d.complete(callbackID) {
		return fmt.Errorf("%w: %q", ErrNoPendingCall, callbackID)
	}

	logging.FromContext(ctx).Debug().Str("callback_id", callbackID).Msg("delivering response")
	d.Evaluate(ctx, script.ResponseCall(callbackID, string(body)))
	return nil
}

// Emit delivers an unsolicited event to onNativeEvent(event, json).
func (d *Dispatcher) Emit(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event, err)
	}
	d.Evaluate(ctx, script.EventCall(event, string(body)))
	return nil
}

// SendScanResult delivers data verbatim to onScanResult(data).
func (d *Dispatcher) SendScanResult(ctx context.Context, data string) {
	d.Evaluate(ctx, script.ScanResultCall(data))
}
