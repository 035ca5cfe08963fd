package usecase

import (
	"context"
	"sync/atomic"

	"github.com/DRSN-tech/search-backend/internal/vectorstore"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// StoreManager владеет активным хранилищем эмбеддингов.
// Запросы читают хранилище без блокировок; подмена версии выполняется только
// атомарной заменой ссылки на полностью собранный и проверенный экземпляр,
// частично загруженное хранилище никогда не публикуется.
type StoreManager struct {
	versionRepo  StoreVersionRepository
	snapshotRepo SnapshotRepository
	encoder      EncoderInfra
	logger       logger.Logger
	active       atomic.Pointer[vectorstore.Store]
}

func NewStoreManager(
	versionRepo StoreVersionRepository,
	snapshotRepo SnapshotRepository,
	encoder EncoderInfra,
	logger logger.Logger,
) *StoreManager {
	return &StoreManager{
		versionRepo:  versionRepo,
		snapshotRepo: snapshotRepo,
		encoder:      encoder,
		logger:       logger,
	}
}

// Active возвращает текущее хранилище.
func (m *StoreManager) Active() (*vectorstore.Store, error) {
	store := m.active.Load()
	if store == nil {
		return nil, e.ErrNoActiveStoreVersion
	}

	return store, nil
}

// LoadActive загружает активную версию хранилища: строка версии из БД,
// снапшот из объектного хранилища, сверка идентичности модели с живым энкодером.
// Вызывается при старте сервиса до начала обслуживания запросов.
func (m *StoreManager) LoadActive(ctx context.Context) error {
	const op = "StoreManager.LoadActive"

	version, err := m.versionRepo.GetActive(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := m.loadSnapshot(ctx, version.SnapshotKey); err != nil {
		return e.Wrap(op, err)
	}

	m.logger.Infof(
		"embedding store loaded: version=%d model=%s dim=%d items=%d",
		version.ID, version.ModelVersion, version.Dimension, version.ItemCount,
	)

	return nil
}

// ApplyRebuild загружает новую версию хранилища по событию пересборки и
// атомарно подменяет активную. При любой ошибке прежнее хранилище продолжает
// обслуживать запросы.
func (m *StoreManager) ApplyRebuild(ctx context.Context, event *RebuildEvent) error {
	const op = "StoreManager.ApplyRebuild"

	if err := m.loadSnapshot(ctx, event.SnapshotKey); err != nil {
		return e.Wrap(op, err)
	}

	m.logger.Infof(
		"embedding store reloaded: event=%s model=%s items=%d",
		event.EventID, event.ModelVersion, event.ItemCount,
	)

	return nil
}

// loadSnapshot скачивает, проверяет и публикует снапшот по ключу.
func (m *StoreManager) loadSnapshot(ctx context.Context, key string) error {
	snap, err := m.snapshotRepo.Load(ctx, key)
	if err != nil {
		return err
	}

	if err := m.verifyIdentity(ctx, snap); err != nil {
		return err
	}

	store, err := vectorstore.FromSnapshot(snap)
	if err != nil {
		return err
	}

	m.active.Store(store)
	return nil
}

// verifyIdentity сверяет модель и размерность снапшота с энкодером запросов.
// Расхождение — ошибка конфигурации развёртывания, не ошибка запроса.
func (m *StoreManager) verifyIdentity(ctx context.Context, snap *vectorstore.Snapshot) error {
	info, err := m.encoder.ModelInfo(ctx)
	if err != nil {
		return err
	}

	if info.ModelVersion != snap.ModelVersion || info.Dimension != snap.Dimension {
		m.logger.Warnf(
			"store/encoder identity mismatch: snapshot %s/%d, encoder %s/%d",
			snap.ModelVersion, snap.Dimension, info.ModelVersion, info.Dimension,
		)
		return e.ErrModelMismatch
	}

	return nil
}
