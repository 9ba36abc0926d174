package host

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// Stdio writes every envelope as one JSON line. A parent process reading the
// component's stdout plays the role of the host.
type Stdio struct {
	mu     sync.Mutex
	out    io.Writer
	origin string
	closed bool
}

// NewStdio creates a channel writing to out, or to stdout when out is nil.
func NewStdio(origin string, out io.Writer) *Stdio {
	if out == nil {
		out = os.Stdout
	}
	return &Stdio{out: out, origin: origin}
}

func (s *Stdio) Post(_ context.Context, env entity.Envelope) error {
	if err := checkEnvelope(env, s.origin); err != nil {
		return err
	}

	line, err := json.Marshal(env.Wire())
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err = s.out.Write(line)
	return err
}

func (s *Stdio) Origin() string { return s.origin }

func (*Stdio) Name() string { return TransportStdout }

func (s *Stdio) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
