package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MessageType is the `type` tag of a component host message.
type MessageType string

const (
	// MessageComponentReady announces that the component finished constructing.
	MessageComponentReady MessageType = "streamlit:componentReady"
	// MessageSetComponentValue carries the value produced by the component.
	MessageSetComponentValue MessageType = "streamlit:setComponentValue"
)

// Errors returned by message validation.
var (
	ErrInvalidOrigin      = errors.New("invalid target origin")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// Valid reports whether t is one of the protocol message types.
func (t MessageType) Valid() bool {
	return t == MessageComponentReady || t == MessageSetComponentValue
}

// HostMessage is the structured message posted to the parent context.
type HostMessage struct {
	Type  MessageType `json:"type"`
	Value *string     `json:"value,omitempty"`
}

// ReadyMessage returns the readiness notification. It has no payload.
func ReadyMessage() HostMessage {
	return HostMessage{Type: MessageComponentReady}
}

// ValueMessage returns a notification carrying value.
func ValueMessage(value string) HostMessage {
	return HostMessage{Type: MessageSetComponentValue, Value: &value}
}

// Payload returns the value or an empty string when the message has none.
func (m HostMessage) Payload() string {
	if m.Value == nil {
		return ""
	}
	return *m.Value
}

// Envelope pairs a message with the origin it may be delivered to.
type Envelope struct {
	Message      HostMessage `json:"message"`
	TargetOrigin string      `json:"targetOrigin"`
}

// Validate checks the message type and the target origin.
func (e Envelope) Validate() error {
	if !e.Message.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMessageType, e.Message.Type)
	}
	if e.Message.Type == MessageComponentReady && e.Message.Value != nil {
		return fmt.Errorf("%w: ready message carries a value", ErrUnknownMessageType)
	}
	_, err := NormalizeOrigin(e.TargetOrigin)
	return err
}

// NormalizeOrigin parses an origin (scheme://host[:port]) and returns its
// canonical lowercase form. Wildcards, paths and opaque origins are refused:
// messages are only ever addressed to a concrete page origin.
func NormalizeOrigin(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	switch origin {
	case "":
		return "", fmt.Errorf("%w: empty", ErrInvalidOrigin)
	case "*", "null":
		return "", fmt.Errorf("%w: %q is not a concrete origin", ErrInvalidOrigin, origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidOrigin, u.Scheme)
	}
	if u.Host == "" || u.User != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q has more than scheme and host", ErrInvalidOrigin, origin)
	}

	host := strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return u.Scheme + "://" + host, nil
}

// SameOrigin reports whether a and b normalize to the same origin.
func SameOrigin(a, b string) bool {
	na, err := NormalizeOrigin(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeOrigin(b)
	if err != nil {
		return false
	}
	return na == nb
}

// WireMessage is the flat JSON form transports put on the wire: the host
// message fields plus the origin it is addressed to.
type WireMessage struct {
	Type         MessageType `json:"type"`
	Value        *string     `json:"value,omitempty"`
	TargetOrigin string      `json:"targetOrigin"`
}

// Wire flattens the envelope.
func (e Envelope) Wire() WireMessage {
	return WireMessage{
		Type:         e.Message.Type,
		Value:        e.Message.Value,
		TargetOrigin: e.TargetOrigin,
	}
}

// Envelope rebuilds the envelope from its wire form.
func (w WireMessage) Envelope() Envelope {
	return Envelope{
		Message:      HostMessage{Type: w.Type, Value: w.Value},
		TargetOrigin: w.TargetOrigin,
	}
}
