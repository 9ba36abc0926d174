package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/logging"
)

// ApplyWindUseCase replaces the configured wind with one read from a source.
type ApplyWindUseCase struct {
	source port.WindSource
}

// NewApplyWindUseCase creates a new ApplyWindUseCase.
func NewApplyWindUseCase(source port.WindSource) *ApplyWindUseCase {
	return &ApplyWindUseCase{source: source}
}

// Execute returns params with WindSpeed and WindDir taken from the source.
// Bullet speed and gravity are left as configured.
func (uc *ApplyWindUseCase) Execute(ctx context.Context, params physics.Params) (physics.Params, error) {
	log := logging.FromContext(ctx)

	wind, err := uc.source.Latest(ctx)
	if err != nil {
		return params, fmt.Errorf("read wind from %s: %w", uc.source.Name(), err)
	}

	out, err := wind.Apply(params)
	if err != nil {
		return params, fmt.Errorf("wind from %s: %w", uc.source.Name(), err)
	}

	event := log.Info().
		Str("source", uc.source.Name()).
		Float64("wind_speed", out.WindSpeed).
		Float64("wind_dir", out.WindDir)
	if !wind.At.IsZero() {
		event = event.Time("observed_at", wind.At)
	}
	event.Msg("wind applied")
	return out, nil
}
