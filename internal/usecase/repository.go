package usecase

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/internal/vectorstore"
)

type CatalogRepository interface {
	// ListActive возвращает неархивированные товары каталога в стабильном порядке (по id).
	ListActive(ctx context.Context) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type StoreVersionRepository interface {
	// Create и DeactivateActive выполняются внутри транзакции из контекста.
	Create(ctx context.Context, version *domain.StoreVersion) (*domain.StoreVersion, error)
	DeactivateActive(ctx context.Context) error
	GetActive(ctx context.Context) (*domain.StoreVersion, error)
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
}

type SnapshotRepository interface {
	Save(ctx context.Context, key string, snap *vectorstore.Snapshot) error
	Load(ctx context.Context, key string) (*vectorstore.Snapshot, error)
}
