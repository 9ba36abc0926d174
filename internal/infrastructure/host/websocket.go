package host

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/logging"
)

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
)

// ErrNoListener is returned by Post when no host is connected.
var ErrNoListener = errors.New("no host listening")

// Websocket posts envelopes to a host over a websocket connection. Writes are
// serialized; the connection is read only to service control frames.
type Websocket struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	url    string
	origin string
	closed bool
}

// DialWebsocket connects to the host endpoint at rawURL, presenting origin in
// the handshake. An unreachable host is not an error: the channel is returned
// detached and every Post reports ErrNoListener.
func DialWebsocket(ctx context.Context, rawURL, origin string) (*Websocket, error) {
	log := logging.FromContext(ctx)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse host url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("host url %q must use ws or wss", rawURL)
	}

	w := &Websocket{url: rawURL, origin: origin}

	header := http.Header{}
	header.Set("Origin", origin)
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, resp, err := dialer.DialContext(ctx, rawURL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("host unreachable, messages will be dropped")
		return w, nil
	}

	log.Debug().Str("url", rawURL).Msg("connected to host")
	w.conn = conn
	go w.drain(conn)
	return w, nil
}

// drain keeps reading so ping and close frames from the host are handled.
func (w *Websocket) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// Connected reports whether a host connection is open.
func (w *Websocket) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn != nil
}

func (w *Websocket) Post(_ context.Context, env entity.Envelope) error {
	if err := checkEnvelope(env, w.origin); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.conn == nil {
		return ErrNoListener
	}

	if err := w.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := w.conn.WriteJSON(env.Wire()); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		return fmt.Errorf("%w: %v", ErrNoListener, err)
	}
	return nil
}

func (w *Websocket) Origin() string { return w.origin }

func (*Websocket) Name() string { return TransportWebsocket }

func (w *Websocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	err := w.conn.Close()
	w.conn = nil
	return err
}
