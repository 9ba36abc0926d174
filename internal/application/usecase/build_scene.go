package usecase

import (
	"context"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/logging"
)

// BuildSceneUseCase composes the scene document.
type BuildSceneUseCase struct {
	builder port.DocumentBuilder
}

// NewBuildSceneUseCase creates a new BuildSceneUseCase.
func NewBuildSceneUseCase(builder port.DocumentBuilder) *BuildSceneUseCase {
	return &BuildSceneUseCase{builder: builder}
}

// Execute validates params and renders the document.
func (uc *BuildSceneUseCase) Execute(ctx context.Context, params physics.Params) (string, error) {
	log := logging.FromContext(ctx)

	if err := params.Validate(); err != nil {
		return "", err
	}

	doc, err := uc.builder.Build(params)
	if err != nil {
		return "", err
	}

	log.Debug().Int("bytes", len(doc)).Msg("scene document built")
	return doc, nil
}
