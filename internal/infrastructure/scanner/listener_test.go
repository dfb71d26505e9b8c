package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataKey = "com.symbol.datawedge.data_string"

func TestExtractScanData(t *testing.T) {
	tests := []struct {
		name  string
		body  []any
		want  string
		found bool
	}{
		{
			name:  "plain string",
			body:  []any{"8801234567890"},
			want:  "8801234567890",
			found: true,
		},
		{
			name: "extras map",
			body: []any{map[string]dbus.Variant{
				"com.symbol.datawedge.label_type": dbus.MakeVariant("LABEL-TYPE-EAN13"),
				dataKey:                           dbus.MakeVariant("8801234567890"),
			}},
			want:  "8801234567890",
			found: true,
		},
		{
			name:  "value kept verbatim",
			body:  []any{map[string]dbus.Variant{dataKey: dbus.MakeVariant("  A\"B'\n ")}},
			want:  "  A\"B'\n ",
			found: true,
		},
		{
			name:  "string dict",
			body:  []any{map[string]string{dataKey: "X1"}},
			want:  "X1",
			found: true,
		},
		{
			name: "missing extra",
			body: []any{map[string]dbus.Variant{"other": dbus.MakeVariant("x")}},
		},
		{
			name: "non-string extra",
			body: []any{map[string]dbus.Variant{dataKey: dbus.MakeVariant(int32(5))}},
		},
		{
			name: "empty body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractScanData(tt.body, dataKey)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListener_MatchRule(t *testing.T) {
	l := NewListener(Config{Interface: "com.example.pda", Member: "ACTION", DataKey: dataKey})
	assert.Equal(t, "type='signal',interface='com.example.pda',member='ACTION'", l.MatchRule())
}

func TestListener_HandleSignal(t *testing.T) {
	l := NewListener(Config{Interface: "com.example.pda", Member: "ACTION", DataKey: dataKey})
	scan := "  0042\"A'\n\u00e9 "

	tests := []struct {
		name string
		sig  *dbus.Signal
		want []string
	}{
		{
			name: "other member",
			sig: &dbus.Signal{
				Name: "com.example.pda.STATUS",
				Body: []any{map[string]dbus.Variant{dataKey: dbus.MakeVariant("ignored")}},
			},
		},
		{
			name: "other interface",
			sig: &dbus.Signal{
				Name: "org.other.ACTION",
				Body: []any{"ignored"},
			},
		},
		{
			name: "missing extra",
			sig: &dbus.Signal{
				Name: "com.example.pda.ACTION",
				Body: []any{map[string]dbus.Variant{"other": dbus.MakeVariant("x")}},
			},
		},
		{
			name: "matching broadcast",
			sig: &dbus.Signal{
				Name: "com.example.pda.ACTION",
				Body: []any{map[string]dbus.Variant{dataKey: dbus.MakeVariant(scan)}},
			},
			want: []string{scan},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			forwarded := l.handleSignal(context.Background(), tt.sig, func(data string) {
				got = append(got, data)
			})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) > 0, forwarded)
		})
	}
}

func TestListener_ListenReportsConnectFailure(t *testing.T) {
	l := NewListener(Config{Interface: "com.example.pda", Member: "ACTION", DataKey: dataKey})
	busErr := errors.New("no session bus")
	l.connect = func(...dbus.ConnOption) (*dbus.Conn, error) { return nil, busErr }

	called := false
	err := l.Listen(context.Background(), func(string) { called = true })
	require.ErrorIs(t, err, busErr)
	assert.Contains(t, err.Error(), "connect session bus")
	assert.False(t, called)
}
