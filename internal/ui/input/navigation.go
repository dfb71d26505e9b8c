// Package input maps keyboard and mouse input on the shell window to
// navigation.
package input

import (
	"context"
	"sync"

	"github.com/bnema/webshell/internal/logging"
	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"
)

// mouseButtonBack is the side button reported as 8 on X11 and Wayland.
const mouseButtonBack = 8

// History is the part of the render host back navigation needs.
type History interface {
	CanGoBack() bool
	GoBack(ctx context.Context) error
}

// isBackKey reports Alt+Left and the dedicated Back key. Lock and button
// state bits are ignored.
func isBackKey(keyval uint, state gdk.ModifierType) bool {
	mods := state & (gdk.ControlMaskValue | gdk.ShiftMaskValue | gdk.AltMaskValue)
	switch keyval {
	case uint(gdk.KEY_Back):
		return true
	case uint(gdk.KEY_Left), uint(gdk.KEY_KP_Left):
		return mods == gdk.AltMaskValue
	default:
		return false
	}
}

// BackNavigator goes back in history on Alt+Left or the mouse back
// button. Without history the input is ignored.
type BackNavigator struct {
	ctx     context.Context
	history History

	keyController *gtk.EventControllerKey
	clickGesture  *gtk.GestureClick

	// callback retention: must stay reachable by Go GC
	keyPressedCb func(gtk.EventControllerKey, uint, uint, gdk.ModifierType) bool
	pressedCb    func(gtk.GestureClick, int, float64, float64)

	mu sync.Mutex
}

// NewBackNavigator creates a navigator over history.
func NewBackNavigator(ctx context.Context, history History) *BackNavigator {
	return &BackNavigator{
		ctx:     logging.WithComponent(ctx, "input"),
		history: history,
	}
}

// GoBack navigates back when history allows and reports whether it did.
func (n *BackNavigator) GoBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	log := logging.FromContext(n.ctx)
	if n.history == nil || !n.history.CanGoBack() {
		log.Debug().Msg("back ignored: no history")
		return false
	}
	if err := n.history.GoBack(n.ctx); err != nil {
		log.Warn().Err(err).Msg("back navigation failed")
		return false
	}
	return true
}

// HandleKey processes a key press. It returns true when the key was a
// back key, consumed or not, so the page never sees it.
func (n *BackNavigator) HandleKey(keyval uint, state gdk.ModifierType) bool {
	if !isBackKey(keyval, state) {
		return false
	}
	n.GoBack()
	return true
}

// HandleButton processes a mouse press.
func (n *BackNavigator) HandleButton(button uint, nPress int) bool {
	if nPress != 1 || button != mouseButtonBack {
		return false
	}
	n.GoBack()
	return true
}

// AttachTo installs the key controller in capture phase and the click
// gesture on widget.
func (n *BackNavigator) AttachTo(widget *gtk.Widget) {
	log := logging.FromContext(n.ctx)

	if widget == nil {
		log.Error().Msg("cannot attach back navigator to nil widget")
		return
	}

	n.keyController = gtk.NewEventControllerKey()
	if n.keyController == nil {
		log.Error().Msg("failed to create key controller")
		return
	}
	n.keyController.SetPropagationPhase(gtk.PhaseCaptureValue)
	n.keyPressedCb = func(_ gtk.EventControllerKey, keyval uint, _ uint, state gdk.ModifierType) bool {
		return n.HandleKey(keyval, state)
	}
	n.keyController.ConnectKeyPressed(&n.keyPressedCb)
	widget.AddController(&n.keyController.EventController)

	n.clickGesture = gtk.NewGestureClick()
	if n.clickGesture == nil {
		log.Error().Msg("failed to create gesture click")
		return
	}
	// all buttons, not just primary
	n.clickGesture.SetButton(0)
	n.pressedCb = func(_ gtk.GestureClick, nPress int, _ float64, _ float64) {
		n.HandleButton(n.clickGesture.GetCurrentButton(), nPress)
	}
	n.clickGesture.ConnectPressed(&n.pressedCb)
	widget.AddController(&n.clickGesture.EventController)

	log.Debug().Msg("back navigation attached")
}
