package host

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// Receiver accepts envelopes in-process.
type Receiver interface {
	Deliver(ctx context.Context, env entity.Envelope) error
}

// Loopback hands envelopes straight to a receiver living in the same process.
type Loopback struct {
	origin   string
	receiver Receiver
}

// NewLoopback creates a channel delivering to receiver.
func NewLoopback(origin string, receiver Receiver) *Loopback {
	return &Loopback{origin: origin, receiver: receiver}
}

func (l *Loopback) Post(ctx context.Context, env entity.Envelope) error {
	if err := checkEnvelope(env, l.origin); err != nil {
		return err
	}
	return l.receiver.Deliver(ctx, env)
}

func (l *Loopback) Origin() string { return l.origin }

func (*Loopback) Name() string { return "loopback" }

func (*Loopback) Close() error { return nil }
