package pgdb

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CatalogRepo реализует чтение каталога товаров поверх PostgreSQL.
// Наполнением каталога занимается внешний конвейер загрузки; поисковый контур
// каталог не изменяет.
type CatalogRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewCatalogRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *CatalogRepo {
	return &CatalogRepo{
		pool: pool,
		conv: conv,
	}
}

// ListActive возвращает неархивированные товары в порядке возрастания id.
// Порядок значим: он становится каноническим порядком хранилища эмбеддингов.
func (c *CatalogRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, created_at, updated_at, is_archived
		FROM products
		WHERE NOT is_archived
		ORDER BY id
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Price,
			&model.ImageURL, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetProductsInfo возвращает метаданные товаров по их идентификаторам.
// NULL-поля нормализуются к пустой строке и нулю.
func (c *CatalogRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT id, name, price, image_url
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := c.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var (
			id       int64
			name     *string
			price    *int64
			imageURL *string
		)
		if err := rows.Scan(&id, &name, &price, &imageURL); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, usecase.NewProductInfo(
			id,
			converter.ConvertOptionalString(name),
			converter.ConvertOptionalInt64(price),
			converter.ConvertOptionalString(imageURL),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
