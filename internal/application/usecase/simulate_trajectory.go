package usecase

import (
	"context"
	"errors"

	"github.com/bnema/ballistic/internal/domain/physics"
)

// ErrInvalidFrameCount is returned when a non-positive frame count is requested.
var ErrInvalidFrameCount = errors.New("frame count must be positive")

// SimulateTrajectoryUseCase runs the Go model of the animation loop.
type SimulateTrajectoryUseCase struct{}

// NewSimulateTrajectoryUseCase creates a new SimulateTrajectoryUseCase.
func NewSimulateTrajectoryUseCase() *SimulateTrajectoryUseCase {
	return &SimulateTrajectoryUseCase{}
}

// Execute returns the first frames frames of the trajectory.
func (*SimulateTrajectoryUseCase) Execute(ctx context.Context, params physics.Params, frames int) ([]physics.Frame, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if frames <= 0 {
		return nil, ErrInvalidFrameCount
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return physics.NewSimulator(params).Run(frames), nil
}
