// Package bridge defines the script-to-native envelope and the closed set
// of operations the hosted application may invoke.
package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedEnvelope is returned when the raw message is not a JSON
	// object carrying a string action.
	ErrMalformedEnvelope = errors.New("malformed bridge envelope")
	// ErrUnknownAction is returned for an action outside the closed set.
	ErrUnknownAction = errors.New("unknown bridge action")
)

// Envelope is the wire form of a script-to-native message.
type Envelope struct {
	Action     string          `json:"action"`
	Data       map[string]any  `json:"data,omitempty"`
	CallbackID json.RawMessage `json:"callbackId,omitempty"`
}

// Request is a decoded envelope: the typed operation and its correlation id.
type Request struct {
	Op         Operation
	CallbackID string
}

// ExpectsResponse reports whether a response must be delivered for r.
func (r Request) ExpectsResponse() bool {
	return r.Op.Kind() == KindRequestResponse && r.CallbackID != ""
}

// Decode parses raw envelope text into a typed request.
func Decode(raw string) (Request, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Action == "" {
		return Request{}, fmt.Errorf("%w: missing action", ErrMalformedEnvelope)
	}

	op, err := newOperation(Action(env.Action), env.Data)
	if err != nil {
		return Request{}, err
	}

	return Request{Op: op, CallbackID: callbackIDString(env.CallbackID)}, nil
}

// callbackIDString accepts string or numeric ids; anything else is treated
// as absent.
func callbackIDString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// stringField reads a loosely typed data value as text. JSON null and
// missing keys yield "".
func stringField(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
