package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/domain/repository"
	"github.com/bnema/ballistic/internal/logging"
)

const (
	insertEmission = `INSERT INTO emissions
    (id, run_id, type, target_origin, transport, payload_size, payload_digest, delivered, error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRecentEmissions = `SELECT id, run_id, type, target_origin, transport, payload_size, payload_digest, delivered, error, created_at
FROM emissions
ORDER BY created_at DESC, id DESC
LIMIT ?`

	countEmissionsByType = `SELECT type, COUNT(*), COALESCE(SUM(delivered), 0)
FROM emissions
GROUP BY type
ORDER BY type`

	deleteAllEmissions = `DELETE FROM emissions`
)

type emissionRepo struct {
	db *sql.DB
}

// NewEmissionRepository returns a repository backed by db.
func NewEmissionRepository(db *sql.DB) repository.EmissionRepository {
	return &emissionRepo{db: db}
}

func (r *emissionRepo) Save(ctx context.Context, e *entity.Emission) error {
	log := logging.FromContext(ctx)
	if err := e.Validate(); err != nil {
		return err
	}

	log.Debug().Str("emission", e.ShortID()).Str("type", string(e.Type)).Msg("saving emission")

	_, err := r.db.ExecContext(ctx, insertEmission,
		string(e.ID),
		e.RunID,
		string(e.Type),
		e.TargetOrigin,
		e.Transport,
		int64(e.PayloadSize),
		e.PayloadDigest,
		boolToInt(e.Delivered),
		e.Error,
		e.CreatedAt.UTC().UnixNano(),
	)
	return err
}

func (r *emissionRepo) GetRecent(ctx context.Context, limit int) ([]*entity.Emission, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, selectRecentEmissions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emissions []*entity.Emission
	for rows.Next() {
		var (
			e           entity.Emission
			id, msgType string
			size        int64
			delivered   int64
			createdAt   int64
		)
		if err := rows.Scan(&id, &e.RunID, &msgType, &e.TargetOrigin, &e.Transport,
			&size, &e.PayloadDigest, &delivered, &e.Error, &createdAt); err != nil {
			return nil, err
		}
		e.ID = entity.EmissionID(id)
		e.Type = entity.MessageType(msgType)
		e.PayloadSize = int(size)
		e.Delivered = delivered != 0
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		emissions = append(emissions, &e)
	}
	return emissions, rows.Err()
}

func (r *emissionRepo) CountByType(ctx context.Context) ([]entity.EmissionTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, countEmissionsByType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []entity.EmissionTypeCount
	for rows.Next() {
		var (
			msgType string
			c       entity.EmissionTypeCount
		)
		if err := rows.Scan(&msgType, &c.Total, &c.Delivered); err != nil {
			return nil, err
		}
		c.Type = entity.MessageType(msgType)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *emissionRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, deleteAllEmissions)
	return err
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
