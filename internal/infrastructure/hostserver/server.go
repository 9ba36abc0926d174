// Package hostserver is a minimal dashboard host. It accepts component host
// messages over a websocket or in-process, keeps the latest component value
// and serves it back over HTTP.
package hostserver

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/logging"
)

const (
	maxMessageSize    = 8 << 20
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	defaultHeight     = 600
)

// Errors reported for dropped messages.
var (
	ErrForeignOrigin = errors.New("message addressed to another origin")
	ErrNotReady      = errors.New("component value received before ready")
)

//go:embed templates/host.html.tmpl
var templatesFS embed.FS

var hostPage = template.Must(template.ParseFS(templatesFS, "templates/host.html.tmpl"))

// Config configures the host.
type Config struct {
	Addr   string
	Origin string
	// FrameHeight is the iframe height on the host page.
	FrameHeight int
}

// State is the host's view of the component.
type State struct {
	Ready     bool      `json:"ready"`
	HasValue  bool      `json:"hasValue"`
	ValueSize int       `json:"valueSize"`
	Messages  int       `json:"messages"`
	Dropped   int       `json:"dropped"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Server holds component state and the HTTP handlers exposing it.
type Server struct {
	cfg      Config
	mux      *http.ServeMux
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	ready     bool
	value     *string
	messages  int
	dropped   int
	updatedAt time.Time
	listeners []func(State)
}

// New validates cfg and builds the server.
func New(cfg Config) (*Server, error) {
	origin, err := entity.NormalizeOrigin(cfg.Origin)
	if err != nil {
		return nil, err
	}
	cfg.Origin = origin
	if cfg.FrameHeight <= 0 {
		cfg.FrameHeight = defaultHeight
	}

	s := &Server{cfg: cfg}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return entity.SameOrigin(r.Header.Get("Origin"), s.cfg.Origin)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHostPage)
	mux.HandleFunc("GET /component", s.handleComponent)
	mux.HandleFunc("GET /api/component", s.handleState)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	s.mux = mux

	return s, nil
}

// Origin returns the normalized origin the host serves.
func (s *Server) Origin() string {
	return s.cfg.Origin
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// OnChange registers a callback run after every accepted message.
func (s *Server) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Deliver applies one envelope to the component state. Messages for another
// origin and values arriving before the ready signal are dropped.
func (s *Server) Deliver(ctx context.Context, env entity.Envelope) error {
	log := logging.FromContext(ctx)

	if err := env.Validate(); err != nil {
		s.drop()
		return err
	}
	if !entity.SameOrigin(env.TargetOrigin, s.cfg.Origin) {
		s.drop()
		return fmt.Errorf("%w: %s", ErrForeignOrigin, env.TargetOrigin)
	}

	s.mu.Lock()
	switch env.Message.Type {
	case entity.MessageComponentReady:
		s.ready = true
	case entity.MessageSetComponentValue:
		if !s.ready {
			s.dropped++
			s.mu.Unlock()
			return ErrNotReady
		}
		value := env.Message.Payload()
		s.value = &value
	}
	s.messages++
	s.updatedAt = time.Now().UTC()
	state := s.stateLocked()
	listeners := make([]func(State), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	log.Debug().
		Str("type", string(env.Message.Type)).
		Int("value_size", state.ValueSize).
		Msg("component message accepted")

	for _, fn := range listeners {
		fn(state)
	}
	return nil
}

func (s *Server) drop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

// State returns a snapshot of the component state.
func (s *Server) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Server) stateLocked() State {
	st := State{
		Ready:     s.ready,
		HasValue:  s.value != nil,
		Messages:  s.messages,
		Dropped:   s.dropped,
		UpdatedAt: s.updatedAt,
	}
	if s.value != nil {
		st.ValueSize = len(*s.value)
	}
	return st
}

// Value returns the latest component value.
func (s *Server) Value() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == nil {
		return "", false
	}
	return *s.value, true
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	log := logging.FromContext(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Str("origin", s.cfg.Origin).Msg("host listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown host: %w", err)
		}
		log.Info().Msg("host stopped")
		return nil
	}
}

func (s *Server) handleHostPage(w http.ResponseWriter, _ *http.Request) {
	data := struct {
		Title  string
		Origin string
		Height int
		State  State
	}{
		Title:  "ballistic host",
		Origin: s.cfg.Origin,
		Height: s.cfg.FrameHeight,
		State:  s.State(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := hostPage.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleComponent(w http.ResponseWriter, _ *http.Request) {
	value, ok := s.Value()
	if !ok {
		http.Error(w, "no component value yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(value))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.State())
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithComponent(r.Context(), "hostserver")
	log := logging.FromContext(ctx)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("origin", r.Header.Get("Origin")).Msg("websocket upgrade refused")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	for {
		var msg entity.WireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("component connection closed")
			}
			return
		}
		if err := s.Deliver(ctx, msg.Envelope()); err != nil {
			log.Warn().Err(err).Str("type", string(msg.Type)).Msg("component message dropped")
		}
	}
}
