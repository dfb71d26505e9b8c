package desktop

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"

	actionDefault = "default"

	// expireDefault lets the server pick the timeout.
	expireDefault = int32(-1)
)

// Compile-time interface check.
var _ port.DesktopNotifier = (*Notifier)(nil)

// Notifier posts freedesktop notifications whose default action opens the
// announced file. It degrades to a no-op without a session bus.
type Notifier struct {
	conn    *dbus.Conn
	opener  port.FileOpener
	enabled bool

	mu      sync.Mutex
	pending map[uint32]port.FileNotice
}

// NewNotifier connects to the session bus. enabled=false or a missing bus
// yields a notifier that only logs.
func NewNotifier(ctx context.Context, opener port.FileOpener, enabled bool) *Notifier {
	log := logging.FromContext(ctx)
	n := &Notifier{
		opener:  opener,
		pending: make(map[uint32]port.FileNotice),
	}
	if !enabled {
		return n
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("notifier: cannot connect to D-Bus session bus")
		return n
	}
	n.conn = conn
	n.enabled = true
	return n
}

// NotifyFile shows notice and remembers it until the notification closes.
func (n *Notifier) NotifyFile(ctx context.Context, notice port.FileNotice) error {
	log := logging.FromContext(ctx)
	if !n.enabled || n.conn == nil {
		log.Debug().Str("title", notice.Title).Str("body", notice.Body).Msg("notifier: disabled, skipping")
		return nil
	}

	hints := map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant("transfer.complete"),
	}
	// Notify(app_name s, replaces_id u, app_icon s, summary s, body s,
	//        actions as, hints a{sv}, expire_timeout i) -> id u
	var id uint32
	err := n.conn.Object(notifyDest, notifyPath).CallWithContext(ctx, notifyInterface+".Notify", 0,
		appName,
		uint32(0),
		"document-save",
		notice.Title,
		notice.Body,
		[]string{actionDefault, "Open"},
		hints,
		expireDefault,
	).Store(&id)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	n.mu.Lock()
	n.pending[id] = notice
	n.mu.Unlock()

	log.Debug().Uint32("id", id).Str("path", notice.Path).Msg("notifier: notification posted")
	return nil
}

// Listen dispatches notification actions until ctx is done.
func (n *Notifier) Listen(ctx context.Context) error {
	if !n.enabled || n.conn == nil {
		return nil
	}
	log := logging.FromContext(ctx)

	rules := []string{
		fmt.Sprintf("type='signal',interface='%s',member='ActionInvoked'", notifyInterface),
		fmt.Sprintf("type='signal',interface='%s',member='NotificationClosed'", notifyInterface),
	}
	for _, rule := range rules {
		if err := n.conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
			return fmt.Errorf("add signal match: %w", err)
		}
	}

	signals := make(chan *dbus.Signal, 8)
	n.conn.Signal(signals)
	defer func() {
		n.conn.RemoveSignal(signals)
		for _, rule := range rules {
			_ = n.conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule).Err
		}
	}()

	log.Debug().Msg("notifier: listening for actions")
	for {
		select {
		case sig, ok := <-signals:
			if !ok || sig == nil {
				return nil
			}
			n.handleSignal(ctx, sig)
		case <-ctx.Done():
			return nil
		}
	}
}

// handleSignal opens the file of an invoked default action and forgets
// closed notifications.
func (n *Notifier) handleSignal(ctx context.Context, sig *dbus.Signal) {
	log := logging.FromContext(ctx)
	switch sig.Name {
	case notifyInterface + ".ActionInvoked":
		var (
			id     uint32
			action string
		)
		if err := dbus.Store(sig.Body, &id, &action); err != nil {
			log.Debug().Err(err).Msg("notifier: malformed ActionInvoked")
			return
		}
		if action != actionDefault {
			return
		}
		notice, ok := n.take(id)
		if !ok || n.opener == nil {
			return
		}
		if err := n.opener.Open(ctx, notice.Path, notice.MIMEType); err != nil {
			log.Warn().Err(err).Str("path", notice.Path).Msg("notifier: failed to open file")
		}
	case notifyInterface + ".NotificationClosed":
		var id, reason uint32
		if err := dbus.Store(sig.Body, &id, &reason); err != nil {
			return
		}
		n.take(id)
	}
}

func (n *Notifier) take(id uint32) (port.FileNotice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notice, ok := n.pending[id]
	delete(n.pending, id)
	return notice, ok
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
