package webkit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/puregotk-webkit/javascriptcore"
	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/logging"
)

// MessageSink receives raw bridge messages posted by the page.
type MessageSink interface {
	Dispatch(ctx context.Context, raw string)
}

// MessageRouter forwards script-message-received events for one handler
// name to a sink. Delivery happens on the GTK main thread.
type MessageRouter struct {
	handlerName string
	sink        MessageSink
	baseCtx     context.Context

	mu        sync.Mutex
	callbacks []interface{}
	signals   []uint32
}

// NewMessageRouter creates a router for handlerName.
func NewMessageRouter(ctx context.Context, handlerName string, sink MessageSink) *MessageRouter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &MessageRouter{
		handlerName: handlerName,
		sink:        sink,
		baseCtx:     logging.WithComponent(ctx, "message-router"),
	}
}

// HandlerName is the name the page posts to.
func (r *MessageRouter) HandlerName() string {
	return r.handlerName
}

// SetupMessageHandler registers the handler in the main world of ucm.
func (r *MessageRouter) SetupMessageHandler(ucm *webkit.UserContentManager) (uint32, error) {
	log := logging.FromContext(r.baseCtx)

	if ucm == nil {
		return 0, errors.New("user content manager is nil")
	}
	if r.handlerName == "" {
		return 0, errors.New("message handler name cannot be empty")
	}

	// connect before registering so no early message is missed
	cb := func(_ webkit.UserContentManager, valuePtr uintptr) {
		r.handleScriptMessage(valuePtr)
	}

	r.mu.Lock()
	r.callbacks = append(r.callbacks, cb)
	r.mu.Unlock()

	signalID := ucm.ConnectScriptMessageReceivedWithDetail(r.handlerName, &cb)

	r.mu.Lock()
	r.signals = append(r.signals, signalID)
	r.mu.Unlock()

	// nil selects the main world; messageHandlers only exists there
	if ok := ucm.RegisterScriptMessageHandler(r.handlerName, nil); !ok {
		return 0, fmt.Errorf("failed to register script message handler %q", r.handlerName)
	}

	log.Info().
		Str("handler", r.handlerName).
		Uint32("signal_id", signalID).
		Msg("script message handler connected")

	return signalID, nil
}

func (r *MessageRouter) handleScriptMessage(valuePtr uintptr) {
	log := logging.FromContext(r.baseCtx)

	if valuePtr == 0 {
		log.Warn().Msg("received script message with nil value pointer")
		return
	}

	jscValue := javascriptcore.ValueNewFromInternalPtr(valuePtr)
	if jscValue == nil {
		log.Warn().Msg("failed to wrap script message JSC value")
		return
	}

	raw := messageText(jscValue)
	if raw == "" {
		log.Warn().Msg("script message is empty")
		return
	}
	if r.sink == nil {
		log.Debug().Msg("no sink for script message")
		return
	}
	r.sink.Dispatch(r.baseCtx, raw)
}

// messageText keeps strings verbatim and serializes anything else, so pages
// may post either a JSON string or a plain object.
func messageText(v *javascriptcore.Value) string {
	if v.IsString() {
		return v.ToString()
	}
	return v.ToJson(0)
}
