package desktop

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/webshell/internal/application/port"
	portmocks "github.com/bnema/webshell/internal/application/port/mocks"
)

func notifierWithPending(opener port.FileOpener) *Notifier {
	n := &Notifier{opener: opener, pending: make(map[uint32]port.FileNotice)}
	n.pending[7] = port.FileNotice{Path: "/home/u/Downloads/a.pdf", MIMEType: "application/pdf"}
	return n
}

func TestNotifier_DefaultActionOpensFile(t *testing.T) {
	opener := portmocks.NewMockFileOpener(t)
	opener.EXPECT().Open(mock.Anything, "/home/u/Downloads/a.pdf", "application/pdf").Return(nil).Once()
	n := notifierWithPending(opener)

	n.handleSignal(context.Background(), &dbus.Signal{
		Name: notifyInterface + ".ActionInvoked",
		Body: []any{uint32(7), "default"},
	})

	assert.Empty(t, n.pending)
}

func TestNotifier_OpenFailureIsLogged(t *testing.T) {
	opener := portmocks.NewMockFileOpener(t)
	opener.EXPECT().Open(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no handler")).Once()
	n := notifierWithPending(opener)

	n.handleSignal(context.Background(), &dbus.Signal{
		Name: notifyInterface + ".ActionInvoked",
		Body: []any{uint32(7), "default"},
	})
}

func TestNotifier_IgnoresOtherSignals(t *testing.T) {
	opener := portmocks.NewMockFileOpener(t)
	n := notifierWithPending(opener)
	ctx := context.Background()

	n.handleSignal(ctx, &dbus.Signal{Name: notifyInterface + ".ActionInvoked", Body: []any{uint32(7), "dismiss"}})
	n.handleSignal(ctx, &dbus.Signal{Name: notifyInterface + ".ActionInvoked", Body: []any{uint32(99), "default"}})
	n.handleSignal(ctx, &dbus.Signal{Name: notifyInterface + ".ActionInvoked", Body: []any{"bad"}})
	assert.Len(t, n.pending, 1)

	n.handleSignal(ctx, &dbus.Signal{Name: notifyInterface + ".NotificationClosed", Body: []any{uint32(7), uint32(2)}})
	assert.Empty(t, n.pending)
}

func TestNotifier_DisabledIsNoop(t *testing.T) {
	n := NewNotifier(context.Background(), nil, false)

	assert.NoError(t, n.NotifyFile(context.Background(), port.FileNotice{Title: "t"}))
	assert.NoError(t, n.Listen(context.Background()))
	assert.NoError(t, n.Close())
}
