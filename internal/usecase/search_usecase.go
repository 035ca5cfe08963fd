package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/search-backend/internal/vectorstore"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// SearchUseCase реализует обработку поискового запроса: векторизация текста,
// ранжирование активного хранилища и сборка результата с метаданными каталога.
type SearchUseCase struct {
	stores      *StoreManager
	encoder     EncoderInfra
	catalogRepo CatalogRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewSearchUC(
	stores *StoreManager,
	encoder EncoderInfra,
	catalogRepo CatalogRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		stores:      stores,
		encoder:     encoder,
		catalogRepo: catalogRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// Search выполняет семантический поиск по каталогу.
// Пустой текст запроса допустим: энкодер тотален над строками, такой запрос
// просто даёт равномерно низкие счёты. Неположительный бюджет — ошибка клиента.
// Операция не имеет побочных эффектов и безопасна для конкурентного вызова.
func (s *SearchUseCase) Search(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "SearchUseCase.Search"

	if req.TopK <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidTopK)
	}

	store, err := s.stores.Active()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	queryVector, err := s.encoder.EncodeQuery(ctx, req.Query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	hits, err := store.Search(queryVector, req.TopK)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	results, err := s.assemble(ctx, hits)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSearchRes(results), nil
}

// assemble присоединяет метаданные каталога к ранжированным идентификаторам,
// сохраняя порядок ранжирования. Метаданные берутся из кэша, промахи — из БД
// с фоновым прогревом кэша. Идентификатор, отсутствующий в каталоге
// (каталог изменился после сборки хранилища), выбрасывается из выдачи с
// предупреждением, остальные результаты сохраняются.
func (s *SearchUseCase) assemble(ctx context.Context, hits []vectorstore.Hit) ([]SearchResult, error) {
	ids := make([]int64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ProductID)
	}

	cached, err := s.cacheRepo.GetProducts(ctx, ids)
	if err != nil {
		s.logger.Warnf("failed to read products cache: %v", err)
		cached = map[int64]ProductInfo{}
	}

	misses := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			misses = append(misses, id)
		}
	}

	fromDB := make(map[int64]ProductInfo, len(misses))
	if len(misses) > 0 {
		infos, err := s.catalogRepo.GetProductsInfo(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			fromDB[info.ID] = info
		}

		// Фоновый прогрев кэша, промах не задерживает ответ
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := s.cacheRepo.SetProducts(bgCtx, infos); err != nil {
				s.logger.Warnf("failed to cache products in background: %v", err)
			}
		}()
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		info, ok := cached[hit.ProductID]
		if !ok {
			if info, ok = fromDB[hit.ProductID]; !ok {
				s.logger.Warnf("%v: product %d dropped from results", e.ErrStaleProduct, hit.ProductID)
				continue
			}
		}

		results = append(results, NewSearchResult(
			info.ID,
			info.Name,
			info.Price,
			info.ImageURL,
			fmt.Sprintf("/product/%d", info.ID),
			hit.Score,
		))
	}

	return results, nil
}
