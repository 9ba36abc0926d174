// Package host provides the transports a component uses to reach its host.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/entity"
)

// Transport names accepted by New.
const (
	TransportStdout    = "stdout"
	TransportWebsocket = "websocket"
	TransportNone      = "none"
)

// ErrClosed is returned by Post after Close.
var ErrClosed = errors.New("host channel closed")

// ErrOriginMismatch is returned when an envelope is addressed to another origin.
var ErrOriginMismatch = errors.New("target origin does not match page origin")

// Options select and configure a transport.
type Options struct {
	Transport string
	// Origin is the page origin the component runs on.
	Origin string
	// URL is the websocket endpoint of the host.
	URL string
	// Out receives the stdout transport's lines; nil means os.Stdout.
	Out io.Writer
}

// New builds the channel named by opts.Transport.
func New(ctx context.Context, opts Options) (port.HostChannel, error) {
	origin, err := entity.NormalizeOrigin(opts.Origin)
	if err != nil {
		return nil, err
	}

	switch opts.Transport {
	case "", TransportStdout:
		return NewStdio(origin, opts.Out), nil
	case TransportWebsocket:
		return DialWebsocket(ctx, opts.URL, origin)
	case TransportNone:
		return NewRecorder(origin), nil
	default:
		return nil, fmt.Errorf("unknown host transport %q", opts.Transport)
	}
}

// checkEnvelope enforces that env is valid and addressed to origin.
func checkEnvelope(env entity.Envelope, origin string) error {
	if err := env.Validate(); err != nil {
		return err
	}
	if !entity.SameOrigin(env.TargetOrigin, origin) {
		return fmt.Errorf("%w: %s != %s", ErrOriginMismatch, env.TargetOrigin, origin)
	}
	return nil
}
