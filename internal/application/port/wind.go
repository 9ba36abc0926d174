package port

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/physics"
)

// WindSource supplies the wind the scene should be fired into.
type WindSource interface {
	// Latest returns the most recent wind the source knows about.
	Latest(ctx context.Context) (physics.Wind, error)

	// Name identifies the source in logs.
	Name() string
}
