package usecase

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/repository"
)

// EmissionHistory is the recent history plus per-type totals.
type EmissionHistory struct {
	Recent []*entity.Emission          `json:"recent"`
	Totals []entity.EmissionTypeCount `json:"totals"`
}

// ListEmissionsUseCase reads the notification history.
type ListEmissionsUseCase struct {
	emissions repository.EmissionRepository
}

// NewListEmissionsUseCase creates a new ListEmissionsUseCase.
func NewListEmissionsUseCase(emissions repository.EmissionRepository) *ListEmissionsUseCase {
	return &ListEmissionsUseCase{emissions: emissions}
}

// Execute returns up to limit recent emissions and the totals.
func (uc *ListEmissionsUseCase) Execute(ctx context.Context, limit int) (*EmissionHistory, error) {
	recent, err := uc.emissions.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	totals, err := uc.emissions.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	return &EmissionHistory{Recent: recent, Totals: totals}, nil
}

// Clear deletes the whole history.
func (uc *ListEmissionsUseCase) Clear(ctx context.Context) error {
	return uc.emissions.DeleteAll(ctx)
}
