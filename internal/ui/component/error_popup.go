package component

import (
	"context"
	"sync"

	"github.com/bnema/webshell/internal/logging"
	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"
)

const (
	errorPopupWidth     = 420
	errorPopupMarginTop = 96
)

// ErrorPopup is a modal overlay with a heading, a message and an OK button.
type ErrorPopup struct {
	backdrop *gtk.Box
	mainBox  *gtk.Box

	headingLabel *gtk.Label
	bodyLabel    *gtk.Label
	btnOK        *gtk.Button

	mu        sync.Mutex
	visible   bool
	onDismiss func()

	retainedCallbacks []interface{}
}

// NewErrorPopup creates the popup hidden.
func NewErrorPopup() (*ErrorPopup, error) {
	ep := &ErrorPopup{}
	if err := ep.createWidgets(); err != nil {
		return nil, err
	}
	ep.attachKeyController()
	return ep, nil
}

// Widget returns the widget to add to the window overlay.
func (ep *ErrorPopup) Widget() *gtk.Widget {
	return &ep.backdrop.Widget
}

// Show displays title and message. onDismiss runs once when the user
// closes the popup.
func (ep *ErrorPopup) Show(ctx context.Context, title, message string, onDismiss func()) {
	ep.mu.Lock()
	if ep.visible {
		ep.mu.Unlock()
		logging.FromContext(ctx).Warn().Msg("error popup already visible, ignoring Show")
		return
	}
	ep.visible = true
	ep.onDismiss = onDismiss
	ep.mu.Unlock()

	ep.headingLabel.SetText(title)
	ep.bodyLabel.SetText(message)
	ep.backdrop.SetVisible(true)
	ep.btnOK.GrabFocus()
}

// IsVisible returns whether the popup is currently displayed.
func (ep *ErrorPopup) IsVisible() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.visible
}

func (ep *ErrorPopup) dismiss() {
	ep.mu.Lock()
	if !ep.visible {
		ep.mu.Unlock()
		return
	}
	ep.visible = false
	cb := ep.onDismiss
	ep.onDismiss = nil
	ep.mu.Unlock()

	ep.backdrop.SetVisible(false)
	if cb != nil {
		cb()
	}
}

func (ep *ErrorPopup) createWidgets() error {
	// the backdrop covers the page so it cannot be clicked behind the popup
	ep.backdrop = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if ep.backdrop == nil {
		return errNilWidget("errorPopupBackdrop")
	}
	ep.backdrop.AddCssClass("error-popup-backdrop")
	ep.backdrop.SetHexpand(true)
	ep.backdrop.SetVexpand(true)
	ep.backdrop.SetVisible(false)

	ep.mainBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if ep.mainBox == nil {
		return errNilWidget("errorPopupMainBox")
	}
	ep.mainBox.AddCssClass("error-popup-container")
	ep.mainBox.SetHalign(gtk.AlignCenterValue)
	ep.mainBox.SetValign(gtk.AlignStartValue)
	ep.mainBox.SetMarginTop(errorPopupMarginTop)
	ep.mainBox.SetSizeRequest(errorPopupWidth, -1)

	emptyText := ""
	ep.headingLabel = gtk.NewLabel(&emptyText)
	if ep.headingLabel == nil {
		return errNilWidget("errorPopupHeadingLabel")
	}
	ep.headingLabel.AddCssClass("error-popup-heading")
	ep.headingLabel.SetHalign(gtk.AlignStartValue)

	ep.bodyLabel = gtk.NewLabel(&emptyText)
	if ep.bodyLabel == nil {
		return errNilWidget("errorPopupBodyLabel")
	}
	ep.bodyLabel.AddCssClass("error-popup-body")
	ep.bodyLabel.SetHalign(gtk.AlignStartValue)
	ep.bodyLabel.SetWrap(true)
	ep.bodyLabel.SetSelectable(true)

	btnRow := gtk.NewBox(gtk.OrientationHorizontalValue, 0)
	if btnRow == nil {
		return errNilWidget("errorPopupBtnRow")
	}
	btnRow.AddCssClass("error-popup-btn-row")
	btnRow.SetHalign(gtk.AlignEndValue)

	ep.btnOK = gtk.NewButtonWithLabel("OK")
	if ep.btnOK == nil {
		return errNilWidget("errorPopupBtnOK")
	}
	ep.btnOK.AddCssClass("error-popup-btn")
	clickedCb := func(_ gtk.Button) { ep.dismiss() }
	ep.retainedCallbacks = append(ep.retainedCallbacks, clickedCb)
	ep.btnOK.ConnectClicked(&clickedCb)

	btnRow.Append(&ep.btnOK.Widget)
	ep.mainBox.Append(&ep.headingLabel.Widget)
	ep.mainBox.Append(&ep.bodyLabel.Widget)
	ep.mainBox.Append(&btnRow.Widget)
	ep.backdrop.Append(&ep.mainBox.Widget)
	return nil
}

func (ep *ErrorPopup) attachKeyController() {
	controller := gtk.NewEventControllerKey()
	if controller == nil {
		return
	}
	controller.SetPropagationPhase(gtk.PhaseCaptureValue)

	keyPressedCb := func(_ gtk.EventControllerKey, keyval uint, _ uint, _ gdk.ModifierType) bool {
		switch keyval {
		case uint(gdk.KEY_Escape), uint(gdk.KEY_Return), uint(gdk.KEY_KP_Enter):
			ep.dismiss()
			return true
		}
		return false
	}
	ep.retainedCallbacks = append(ep.retainedCallbacks, keyPressedCb)
	controller.ConnectKeyPressed(&keyPressedCb)
	ep.backdrop.AddController(&controller.EventController)
}
