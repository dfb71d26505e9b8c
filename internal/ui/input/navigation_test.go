package input

import (
	"context"
	"errors"
	"testing"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/stretchr/testify/assert"
)

type fakeHistory struct {
	canGoBack bool
	err       error
	backCalls int
}

func (f *fakeHistory) CanGoBack() bool { return f.canGoBack }

func (f *fakeHistory) GoBack(context.Context) error {
	f.backCalls++
	return f.err
}

func TestIsBackKey(t *testing.T) {
	tests := []struct {
		name   string
		keyval uint
		state  gdk.ModifierType
		want   bool
	}{
		{"alt+left", uint(gdk.KEY_Left), gdk.AltMaskValue, true},
		{"alt+keypad left", uint(gdk.KEY_KP_Left), gdk.AltMaskValue, true},
		{"plain left", uint(gdk.KEY_Left), 0, false},
		{"ctrl+alt+left", uint(gdk.KEY_Left), gdk.AltMaskValue | gdk.ControlMaskValue, false},
		{"back key", uint(gdk.KEY_Back), 0, true},
		{"alt+right", uint(gdk.KEY_Right), gdk.AltMaskValue, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBackKey(tt.keyval, tt.state))
		})
	}
}

func TestBackNavigator(t *testing.T) {
	ctx := context.Background()

	t.Run("goes back when history allows", func(t *testing.T) {
		h := &fakeHistory{canGoBack: true}
		n := NewBackNavigator(ctx, h)

		assert.True(t, n.HandleKey(uint(gdk.KEY_Left), gdk.AltMaskValue))
		assert.Equal(t, 1, h.backCalls)
	})

	t.Run("ignored without history", func(t *testing.T) {
		h := &fakeHistory{}
		n := NewBackNavigator(ctx, h)

		assert.True(t, n.HandleKey(uint(gdk.KEY_Left), gdk.AltMaskValue), "key is still consumed")
		assert.False(t, n.GoBack())
		assert.Equal(t, 0, h.backCalls)
	})

	t.Run("other keys pass through", func(t *testing.T) {
		h := &fakeHistory{canGoBack: true}
		n := NewBackNavigator(ctx, h)

		assert.False(t, n.HandleKey(uint(gdk.KEY_a), 0))
		assert.Equal(t, 0, h.backCalls)
	})

	t.Run("mouse back button", func(t *testing.T) {
		h := &fakeHistory{canGoBack: true}
		n := NewBackNavigator(ctx, h)

		assert.True(t, n.HandleButton(mouseButtonBack, 1))
		assert.False(t, n.HandleButton(mouseButtonBack, 2), "double press ignored")
		assert.False(t, n.HandleButton(1, 1))
		assert.Equal(t, 1, h.backCalls)
	})

	t.Run("go back failure", func(t *testing.T) {
		h := &fakeHistory{canGoBack: true, err: errors.New("destroyed")}
		n := NewBackNavigator(ctx, h)

		assert.False(t, n.GoBack())
	})
}
