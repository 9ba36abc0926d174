package repository

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// EmissionRepository defines operations for host notification history.
type EmissionRepository interface {
	// Save stores an emission record.
	Save(ctx context.Context, emission *entity.Emission) error

	// GetRecent returns the most recent emissions, newest first.
	GetRecent(ctx context.Context, limit int) ([]*entity.Emission, error)

	// CountByType aggregates emissions per message type.
	CountByType(ctx context.Context) ([]entity.EmissionTypeCount, error)

	// DeleteAll removes the whole history.
	DeleteAll(ctx context.Context) error
}
