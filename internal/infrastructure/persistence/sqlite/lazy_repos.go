package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/repository"
)

// LazyEmissionRepository wraps an emission repository with lazy database initialization.
type LazyEmissionRepository struct {
	provider port.DatabaseProvider
	repo     repository.EmissionRepository
	once     sync.Once
	initErr  error
}

// NewLazyEmissionRepository creates a lazy-loading emission repository.
func NewLazyEmissionRepository(provider port.DatabaseProvider) repository.EmissionRepository {
	return &LazyEmissionRepository{provider: provider}
}

func (r *LazyEmissionRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewEmissionRepository(db)
	})
	return r.initErr
}

func (r *LazyEmissionRepository) Save(ctx context.Context, e *entity.Emission) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, e)
}

func (r *LazyEmissionRepository) GetRecent(ctx context.Context, limit int) ([]*entity.Emission, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.GetRecent(ctx, limit)
}

func (r *LazyEmissionRepository) CountByType(ctx context.Context) ([]entity.EmissionTypeCount, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.CountByType(ctx)
}

func (r *LazyEmissionRepository) DeleteAll(ctx context.Context) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.DeleteAll(ctx)
}
