package host

import (
	"context"
	"sync"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// Recorder keeps envelopes in memory. With no reader attached it behaves like
// a parent page without a message listener.
type Recorder struct {
	mu        sync.Mutex
	origin    string
	envelopes []entity.Envelope
}

// NewRecorder creates an in-memory channel.
func NewRecorder(origin string) *Recorder {
	return &Recorder{origin: origin}
}

func (r *Recorder) Post(_ context.Context, env entity.Envelope) error {
	if err := checkEnvelope(env, r.origin); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, env)
	return nil
}

// Envelopes returns a copy of everything posted so far.
func (r *Recorder) Envelopes() []entity.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Envelope, len(r.envelopes))
	copy(out, r.envelopes)
	return out
}

func (r *Recorder) Origin() string { return r.origin }

func (*Recorder) Name() string { return TransportNone }

func (*Recorder) Close() error { return nil }
