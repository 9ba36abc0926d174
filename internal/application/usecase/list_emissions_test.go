package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/domain/entity"
	repomocks "github.com/bnema/ballistic/internal/domain/repository/mocks"
)

func TestListEmissionsUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockEmissionRepository(t)

	recent := []*entity.Emission{{ID: "a", Type: entity.MessageComponentReady, CreatedAt: time.Now()}}
	totals := []entity.EmissionTypeCount{{Type: entity.MessageComponentReady, Total: 1, Delivered: 1}}
	repo.EXPECT().GetRecent(mock.Anything, 10).Return(recent, nil)
	repo.EXPECT().CountByType(mock.Anything).Return(totals, nil)

	history, err := usecase.NewListEmissionsUseCase(repo).Execute(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, recent, history.Recent)
	assert.Equal(t, totals, history.Totals)
}

func TestListEmissionsUseCase_Execute_RepoError(t *testing.T) {
	repo := repomocks.NewMockEmissionRepository(t)
	repo.EXPECT().GetRecent(mock.Anything, 5).Return(nil, errors.New("locked"))

	_, err := usecase.NewListEmissionsUseCase(repo).Execute(testContext(), 5)
	require.Error(t, err)
}

func TestListEmissionsUseCase_Clear(t *testing.T) {
	repo := repomocks.NewMockEmissionRepository(t)
	repo.EXPECT().DeleteAll(mock.Anything).Return(nil)

	require.NoError(t, usecase.NewListEmissionsUseCase(repo).Clear(testContext()))
}
