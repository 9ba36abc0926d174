package port

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bnema/ballistic/internal/domain/physics"
)

// DocumentBuilder composes the scene document.
type DocumentBuilder interface {
	Build(params physics.Params) (string, error)
}

// ScriptEvaluator runs the animation script embedded in a document and
// reports where the projectile is after each frame.
type ScriptEvaluator interface {
	Evaluate(ctx context.Context, document string, frames int) ([]mgl64.Vec3, error)
}
