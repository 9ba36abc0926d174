package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	portmocks "github.com/bnema/ballistic/internal/application/port/mocks"
	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/physics"
	repomocks "github.com/bnema/ballistic/internal/domain/repository/mocks"
	"github.com/bnema/ballistic/internal/infrastructure/host"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
)

const pageOrigin = "http://localhost:8501"

func TestPublishComponentUseCase_Execute_ReadyThenValue(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	built := false
	builder := builderFunc(func(physics.Params) (string, error) {
		built = true
		return "<div>scene</div>", nil
	})

	channel := portmocks.NewMockHostChannel(ctrl)
	channel.EXPECT().Origin().Return(pageOrigin).AnyTimes()
	channel.EXPECT().Name().Return("websocket").AnyTimes()
	gomock.InOrder(
		channel.EXPECT().Post(gomock.Any(), entity.Envelope{Message: entity.ReadyMessage(), TargetOrigin: pageOrigin}).
			DoAndReturn(func(context.Context, entity.Envelope) error {
				assert.True(t, built, "document must be built before the first message")
				return nil
			}),
		channel.EXPECT().Post(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, env entity.Envelope) error {
				assert.Equal(t, entity.MessageSetComponentValue, env.Message.Type)
				assert.Equal(t, "<div>scene</div>", env.Message.Payload())
				assert.Equal(t, pageOrigin, env.TargetOrigin)
				return nil
			}),
	)

	var saved []*entity.Emission
	emissions := repomocks.NewMockEmissionRepository(t)
	emissions.EXPECT().Save(mock.Anything, mock.AnythingOfType("*entity.Emission")).
		Run(func(_ context.Context, e *entity.Emission) { saved = append(saved, e) }).
		Return(nil).Times(2)

	uc := usecase.NewPublishComponentUseCase(builder, channel, emissions)
	out, err := uc.Execute(ctx, usecase.PublishComponentInput{Params: physics.DefaultParams()})
	require.NoError(t, err)

	assert.True(t, out.Delivered())
	assert.Equal(t, "<div>scene</div>", out.Document)
	assert.Equal(t, pageOrigin, out.TargetOrigin)
	require.Len(t, out.Deliveries, 2)

	require.Len(t, saved, 2)
	assert.Equal(t, entity.MessageComponentReady, saved[0].Type)
	assert.Zero(t, saved[0].PayloadSize)
	assert.Empty(t, saved[0].PayloadDigest)
	assert.Equal(t, entity.MessageSetComponentValue, saved[1].Type)
	assert.Equal(t, len("<div>scene</div>"), saved[1].PayloadSize)
	assert.Len(t, saved[1].PayloadDigest, 64)
	assert.Equal(t, out.RunID, saved[0].RunID)
	assert.Equal(t, out.RunID, saved[1].RunID)
	assert.Equal(t, "websocket", saved[1].Transport)
}

func TestPublishComponentUseCase_Execute_DeliveryFailureIsNotAnError(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	channel := portmocks.NewMockHostChannel(ctrl)
	channel.EXPECT().Origin().Return(pageOrigin).AnyTimes()
	channel.EXPECT().Name().Return("websocket").AnyTimes()
	channel.EXPECT().Post(gomock.Any(), gomock.Any()).Return(host.ErrNoListener).Times(2)

	emissions := repomocks.NewMockEmissionRepository(t)
	emissions.EXPECT().Save(mock.Anything, mock.MatchedBy(func(e *entity.Emission) bool {
		return !e.Delivered && e.Error == host.ErrNoListener.Error()
	})).Return(nil).Times(2)

	uc := usecase.NewPublishComponentUseCase(builderFunc(func(physics.Params) (string, error) {
		return "doc", nil
	}), channel, emissions)

	out, err := uc.Execute(ctx, usecase.PublishComponentInput{Params: physics.DefaultParams()})
	require.NoError(t, err)
	assert.False(t, out.Delivered())
	for _, d := range out.Deliveries {
		assert.ErrorIs(t, d.Err, host.ErrNoListener)
	}
}

func TestPublishComponentUseCase_Execute_BuildFailurePostsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	channel := portmocks.NewMockHostChannel(ctrl)
	emissions := repomocks.NewMockEmissionRepository(t)

	boom := errors.New("template exploded")
	uc := usecase.NewPublishComponentUseCase(builderFunc(func(physics.Params) (string, error) {
		return "", boom
	}), channel, emissions)

	out, err := uc.Execute(testContext(), usecase.PublishComponentInput{Params: physics.DefaultParams()})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestPublishComponentUseCase_Execute_RecordFailureIsLogged(t *testing.T) {
	recorder := host.NewRecorder(pageOrigin)
	emissions := repomocks.NewMockEmissionRepository(t)
	emissions.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Times(2)

	uc := usecase.NewPublishComponentUseCase(builderFunc(func(physics.Params) (string, error) {
		return "doc", nil
	}), recorder, emissions)

	out, err := uc.Execute(testContext(), usecase.PublishComponentInput{Params: physics.DefaultParams()})
	require.NoError(t, err)
	assert.True(t, out.Delivered())
	assert.Len(t, recorder.Envelopes(), 2)
}

func TestPublishComponentUseCase_Execute_CanonicalDocumentOverRecorder(t *testing.T) {
	b, err := scenedoc.NewBuilder(scenedoc.DefaultOptions())
	require.NoError(t, err)
	recorder := host.NewRecorder(pageOrigin)

	uc := usecase.NewPublishComponentUseCase(b, recorder, nil)
	out, err := uc.Execute(testContext(), usecase.PublishComponentInput{Params: physics.DefaultParams()})
	require.NoError(t, err)

	envs := recorder.Envelopes()
	require.Len(t, envs, 2)
	assert.Equal(t, entity.MessageComponentReady, envs[0].Message.Type)
	assert.Nil(t, envs[0].Message.Value)
	assert.Equal(t, entity.MessageSetComponentValue, envs[1].Message.Type)
	assert.Equal(t, scenedoc.Build(), envs[1].Message.Payload())
	assert.Equal(t, out.Document, envs[1].Message.Payload())
	for _, env := range envs {
		assert.Equal(t, pageOrigin, env.TargetOrigin)
		assert.NotEqual(t, "*", env.TargetOrigin)
	}
}

func TestPublishComponentUseCase_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	cancel()

	recorder := host.NewRecorder(pageOrigin)
	uc := usecase.NewPublishComponentUseCase(builderFunc(func(physics.Params) (string, error) {
		return "doc", nil
	}), recorder, nil)

	_, err := uc.Execute(ctx, usecase.PublishComponentInput{Params: physics.DefaultParams()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recorder.Envelopes())
}
