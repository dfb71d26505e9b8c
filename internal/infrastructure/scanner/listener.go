// Package scanner forwards barcode scans broadcast on the D-Bus session bus.
package scanner

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// Compile-time interface check.
var _ port.ScanSource = (*Listener)(nil)

// Config selects the broadcast signal and the extra carrying the scan.
type Config struct {
	Interface string
	Member    string
	DataKey   string
}

// Listener subscribes to scan broadcasts.
type Listener struct {
	cfg     Config
	connect func(opts ...dbus.ConnOption) (*dbus.Conn, error)
}

// NewListener creates a listener on the session bus.
func NewListener(cfg Config) *Listener {
	return &Listener{cfg: cfg, connect: dbus.ConnectSessionBus}
}

// MatchRule returns the D-Bus match rule for the configured signal.
func (l *Listener) MatchRule() string {
	return fmt.Sprintf("type='signal',interface='%s',member='%s'", l.cfg.Interface, l.cfg.Member)
}

// Listen calls onScan for every broadcast carrying the data extra until ctx
// is done. Broadcasts without it are ignored.
func (l *Listener) Listen(ctx context.Context, onScan func(data string)) error {
	log := logging.FromContext(ctx)

	conn, err := l.connect()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	rule := l.MatchRule()
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return fmt.Errorf("add signal match: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	log.Info().Str("rule", rule).Msg("scanner: listening for broadcasts")

	for {
		select {
		case sig, ok := <-signals:
			if !ok || sig == nil {
				return nil
			}
			l.handleSignal(ctx, sig, onScan)
		case <-ctx.Done():
			return nil
		}
	}
}

// handleSignal forwards the scan carried by sig. Signals for another member
// and broadcasts without the data extra are dropped.
func (l *Listener) handleSignal(ctx context.Context, sig *dbus.Signal, onScan func(data string)) bool {
	if sig.Name != l.cfg.Interface+"."+l.cfg.Member {
		return false
	}
	data, found := ExtractScanData(sig.Body, l.cfg.DataKey)
	if !found {
		logging.FromContext(ctx).Debug().Str("sender", sig.Sender).Msg("scanner: broadcast without data extra")
		return false
	}
	logging.FromContext(ctx).Debug().Int("len", len(data)).Msg("scanner: scan received")
	onScan(data)
	return true
}

// ExtractScanData reads the scan from a signal body. The body carries either
// a plain string or an a{sv} extras map holding key. The value is returned
// verbatim.
func ExtractScanData(body []any, key string) (string, bool) {
	for _, arg := range body {
		switch v := arg.(type) {
		case string:
			return v, true
		case map[string]dbus.Variant:
			extra, ok := v[key]
			if !ok {
				continue
			}
			if s, ok := extra.Value().(string); ok {
				return s, true
			}
		case map[string]string:
			if s, ok := v[key]; ok {
				return s, true
			}
		}
	}
	return "", false
}
