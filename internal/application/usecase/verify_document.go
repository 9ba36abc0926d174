package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/logging"
)

// DefaultVerifyTolerance is the accepted per-axis deviation.
const DefaultVerifyTolerance = 1e-9

// ErrTrajectoryMismatch is returned when the document's script diverges from the Go model.
var ErrTrajectoryMismatch = errors.New("document trajectory does not match model")

// VerifyDocumentInput contains the parameters for a verification.
type VerifyDocumentInput struct {
	Document  string
	Params    physics.Params
	Frames    int
	Tolerance float64
}

// VerifyDocumentOutput reports how far the script strayed from the model.
type VerifyDocumentOutput struct {
	Frames       int
	MaxDeviation float64
	WorstFrame   int
}

// VerifyDocumentUseCase runs a document's animation script and compares it
// frame by frame with the Go simulator.
type VerifyDocumentUseCase struct {
	evaluator port.ScriptEvaluator
}

// NewVerifyDocumentUseCase creates a new VerifyDocumentUseCase.
func NewVerifyDocumentUseCase(evaluator port.ScriptEvaluator) *VerifyDocumentUseCase {
	return &VerifyDocumentUseCase{evaluator: evaluator}
}

// Execute evaluates the document. The output is filled in even on mismatch.
func (uc *VerifyDocumentUseCase) Execute(ctx context.Context, input VerifyDocumentInput) (*VerifyDocumentOutput, error) {
	log := logging.FromContext(ctx)

	if err := input.Params.Validate(); err != nil {
		return nil, err
	}
	if input.Frames <= 0 {
		return nil, ErrInvalidFrameCount
	}
	tolerance := input.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultVerifyTolerance
	}

	got, err := uc.evaluator.Evaluate(ctx, input.Document, input.Frames)
	if err != nil {
		return nil, fmt.Errorf("evaluate document: %w", err)
	}
	if len(got) != input.Frames {
		return nil, fmt.Errorf("%w: evaluated %d frames, want %d", ErrTrajectoryMismatch, len(got), input.Frames)
	}

	want := physics.NewSimulator(input.Params).Run(input.Frames)
	out := &VerifyDocumentOutput{Frames: input.Frames}
	for i, frame := range want {
		for axis := range 3 {
			dev := math.Abs(frame.Position[axis] - got[i][axis])
			if dev > out.MaxDeviation || math.IsNaN(dev) {
				out.MaxDeviation = dev
				out.WorstFrame = frame.Index
			}
		}
	}

	log.Debug().
		Int("frames", out.Frames).
		Float64("max_deviation", out.MaxDeviation).
		Msg("document verified")

	if out.MaxDeviation > tolerance || math.IsNaN(out.MaxDeviation) {
		return out, fmt.Errorf("%w: deviation %g at frame %d exceeds %g",
			ErrTrajectoryMismatch, out.MaxDeviation, out.WorstFrame, tolerance)
	}
	return out, nil
}
