package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/infrastructure/jsvm"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
)

type evaluatorFunc func(ctx context.Context, doc string, frames int) ([]mgl64.Vec3, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, doc string, frames int) ([]mgl64.Vec3, error) {
	return f(ctx, doc, frames)
}

func TestSimulateTrajectoryUseCase_Execute(t *testing.T) {
	uc := usecase.NewSimulateTrajectoryUseCase()

	frames, err := uc.Execute(testContext(), physics.DefaultParams(), 20)
	require.NoError(t, err)
	require.Len(t, frames, 20)
	assert.InDelta(t, 61.5, frames[19].Position.X(), 1e-9)

	_, err = uc.Execute(testContext(), physics.DefaultParams(), 0)
	assert.ErrorIs(t, err, usecase.ErrInvalidFrameCount)
}

func TestVerifyDocumentUseCase_Execute_CanonicalDocument(t *testing.T) {
	uc := usecase.NewVerifyDocumentUseCase(jsvm.NewEvaluator())

	out, err := uc.Execute(testContext(), usecase.VerifyDocumentInput{
		Document: scenedoc.Build(),
		Params:   physics.DefaultParams(),
		Frames:   60,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, out.Frames)
	assert.LessOrEqual(t, out.MaxDeviation, usecase.DefaultVerifyTolerance)
}

func TestVerifyDocumentUseCase_Execute_DetectsDrift(t *testing.T) {
	uc := usecase.NewVerifyDocumentUseCase(evaluatorFunc(func(_ context.Context, _ string, frames int) ([]mgl64.Vec3, error) {
		out := make([]mgl64.Vec3, 0, frames)
		for _, f := range physics.NewSimulator(physics.DefaultParams()).Run(frames) {
			out = append(out, f.Position)
		}
		out[2] = out[2].Add(mgl64.Vec3{0, 0, 0.5})
		return out, nil
	}))

	out, err := uc.Execute(testContext(), usecase.VerifyDocumentInput{Params: physics.DefaultParams(), Frames: 5})
	assert.ErrorIs(t, err, usecase.ErrTrajectoryMismatch)
	require.NotNil(t, out)
	assert.Equal(t, 3, out.WorstFrame)
	assert.InDelta(t, 0.5, out.MaxDeviation, 1e-12)
}

func TestVerifyDocumentUseCase_Execute_ParamsDifferFromDocument(t *testing.T) {
	uc := usecase.NewVerifyDocumentUseCase(jsvm.NewEvaluator())

	p := physics.DefaultParams()
	p.Gravity = 1.62
	_, err := uc.Execute(testContext(), usecase.VerifyDocumentInput{
		Document: scenedoc.Build(),
		Params:   p,
		Frames:   10,
	})
	assert.ErrorIs(t, err, usecase.ErrTrajectoryMismatch)
}

func TestVerifyDocumentUseCase_Execute_EvaluatorError(t *testing.T) {
	uc := usecase.NewVerifyDocumentUseCase(evaluatorFunc(func(context.Context, string, int) ([]mgl64.Vec3, error) {
		return nil, jsvm.ErrNoInlineScript
	}))

	_, err := uc.Execute(testContext(), usecase.VerifyDocumentInput{Params: physics.DefaultParams(), Frames: 1})
	assert.True(t, errors.Is(err, jsvm.ErrNoInlineScript))
}

func TestVerifyDocumentUseCase_Execute_ShortEvaluation(t *testing.T) {
	uc := usecase.NewVerifyDocumentUseCase(evaluatorFunc(func(context.Context, string, int) ([]mgl64.Vec3, error) {
		return []mgl64.Vec3{{1.5, 1.2, 0}}, nil
	}))

	_, err := uc.Execute(testContext(), usecase.VerifyDocumentInput{Params: physics.DefaultParams(), Frames: 4})
	assert.ErrorIs(t, err, usecase.ErrTrajectoryMismatch)
}
