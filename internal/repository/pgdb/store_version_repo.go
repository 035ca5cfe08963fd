package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// StoreVersionRepo реализует учёт версий хранилища эмбеддингов поверх PostgreSQL.
type StoreVersionRepo struct {
	pool *pgxpool.Pool
	conv converter.StoreVersionConverter
}

func NewStoreVersionRepo(pool *pgxpool.Pool, conv converter.StoreVersionConverter) *StoreVersionRepo {
	return &StoreVersionRepo{
		pool: pool,
		conv: conv,
	}
}

// Create записывает новую активную версию хранилища. Требует транзакции в контексте:
// создание версии и деактивация старой должны фиксироваться атомарно.
func (s *StoreVersionRepo) Create(ctx context.Context, version *domain.StoreVersion) (*domain.StoreVersion, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := s.conv.ToModel(version)
	query := `
		INSERT INTO store_versions (model_version, dimension, item_count, snapshot_key, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created_at, is_active;
	`

	if err := tx.QueryRow(ctx, query,
		model.ModelVersion,
		model.Dimension,
		model.ItemCount,
		model.SnapshotKey,
	).Scan(&model.ID, &model.CreatedAt, &model.IsActive); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(model), nil
}

// DeactivateActive снимает активность с текущей версии. Требует транзакции в контексте.
func (s *StoreVersionRepo) DeactivateActive(ctx context.Context) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `UPDATE store_versions SET is_active = false WHERE is_active;`); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetActive возвращает активную версию хранилища.
func (s *StoreVersionRepo) GetActive(ctx context.Context) (*domain.StoreVersion, error) {
	query := `
		SELECT id, model_version, dimension, item_count, snapshot_key, created_at, is_active
		FROM store_versions
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1;
	`

	var model converter.StoreVersionModel
	err := s.pool.QueryRow(ctx, query).Scan(
		&model.ID,
		&model.ModelVersion,
		&model.Dimension,
		&model.ItemCount,
		&model.SnapshotKey,
		&model.CreatedAt,
		&model.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoActiveStoreVersion)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}
