package port

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// HostChannel is the one-way link from a component to its enclosing host.
// It is the Go counterpart of window.parent.postMessage: posting never waits
// for an acknowledgment and there is no inbound direction.
type HostChannel interface {
	// Post delivers the envelope. Implementations return an error only to let
	// callers log it; a missing listener is not something callers recover from.
	Post(ctx context.Context, env entity.Envelope) error

	// Origin is the origin of the page the component runs on. Every message
	// is addressed to it.
	Origin() string

	// Name identifies the transport in logs and history.
	Name() string

	Close() error
}
