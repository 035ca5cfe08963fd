package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/internal/vectorstore"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IndexUseCase реализует пакетную сборку хранилища эмбеддингов по каталогу.
type IndexUseCase struct {
	catalogRepo  CatalogRepository
	versionRepo  StoreVersionRepository
	snapshotRepo SnapshotRepository
	encoder      EncoderInfra
	producer     EventProducerInfra
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewIndexUC(
	catalogRepo CatalogRepository,
	versionRepo StoreVersionRepository,
	snapshotRepo SnapshotRepository,
	encoder EncoderInfra,
	producer EventProducerInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *IndexUseCase {
	return &IndexUseCase{
		catalogRepo:  catalogRepo,
		versionRepo:  versionRepo,
		snapshotRepo: snapshotRepo,
		encoder:      encoder,
		producer:     producer,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// Rebuild собирает новую версию хранилища целиком: по одному эмбеддингу на
// каждый товар каталога, в порядке каталога. Сборка атомарна — при любой
// ошибке (включая отказ энкодера на отдельном товаре) версия не публикуется,
// частичных хранилищ не бывает.
func (u *IndexUseCase) Rebuild(ctx context.Context) (*RebuildRes, error) {
	const op = "IndexUseCase.Rebuild"

	products, err := u.catalogRepo.ListActive(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	texts, err := representationTexts(products)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info, err := u.encoder.ModelInfo(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.logger.Infof("rebuilding embedding store: %d products, model=%s dim=%d",
		len(products), info.ModelVersion, info.Dimension)

	vectors, err := u.encoder.EncodeBatch(ctx, texts)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(vectors) != len(products) {
		return nil, e.Wrap(op, fmt.Errorf("%w: encoded %d of %d texts", e.ErrEncodingFailed, len(vectors), len(products)))
	}

	embeddings := make([]domain.Embedding, 0, len(products))
	for i, product := range products {
		embeddings = append(embeddings, *domain.NewEmbedding(product.ID, vectors[i]))
	}

	store, err := vectorstore.New(info.ModelVersion, info.Dimension, embeddings)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	snapshotKey := fmt.Sprintf("store/%s.json", uuid.NewString())
	if err := u.snapshotRepo.Save(ctx, snapshotKey, store.Snapshot()); err != nil {
		return nil, e.Wrap(op, err)
	}

	version, err := u.activateVersion(ctx, store, snapshotKey)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event := NewRebuildEvent(
		uuid.NewString(),
		time.Now().UTC().UnixNano(),
		version.ModelVersion,
		version.Dimension,
		version.ItemCount,
		version.SnapshotKey,
	)
	if err := u.producer.PublishRebuild(ctx, event); err != nil {
		// Версия уже опубликована и будет подхвачена при рестарте инстансов
		u.logger.Warnf("failed to publish rebuild event: %v", err)
	}

	return NewRebuildRes(version.ID, version.ModelVersion, version.Dimension, version.ItemCount, version.SnapshotKey), nil
}

// activateVersion записывает новую версию хранилища и снимает активность со
// старой в одной транзакции.
func (u *IndexUseCase) activateVersion(ctx context.Context, store *vectorstore.Store, snapshotKey string) (*domain.StoreVersion, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err := u.versionRepo.DeactivateActive(ctx); err != nil {
		return nil, err
	}

	newVersion := domain.NewStoreVersion(store.ModelVersion(), store.Dimension(), int64(store.Len()), snapshotKey)
	version, err := u.versionRepo.Create(ctx, newVersion)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return version, nil
}

// representationTexts выводит текст-представление для каждого товара,
// предварительно проверяя наличие идентификатора: товар без идентификатора
// сломал бы сопоставление индекса и товара при поиске.
func representationTexts(products []domain.Product) ([]string, error) {
	texts := make([]string, 0, len(products))
	for _, product := range products {
		if product.ID == 0 {
			return nil, fmt.Errorf("%w: %q", e.ErrMissingProductID, product.Name)
		}

		texts = append(texts, product.RepresentationText())
	}

	return texts, nil
}
