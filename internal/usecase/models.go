package usecase

// SEARCH USECASE

// SearchReq — запрос семантического поиска: свободный текст и бюджет результатов.
type SearchReq struct {
	Query string
	TopK  int
}

// SearchRes — упорядоченный по убыванию близости список результатов.
type SearchRes struct {
	Results []SearchResult
}

// SearchResult — один результат поиска с присоединёнными метаданными каталога.
type SearchResult struct {
	ProductID  int64
	Name       string
	Price      int64 // копейки
	ImageURL   string
	ProductURL string
	Similarity float64
}

// ProductInfo — DTO с метаданными товара для сборки результата (БД и кэш).
type ProductInfo struct {
	ID       int64
	Name     string
	Price    int64
	ImageURL string
}

// INDEX USECASE

// RebuildRes — итог пересборки хранилища эмбеддингов.
type RebuildRes struct {
	VersionID    int64
	ModelVersion string
	Dimension    int
	ItemCount    int64
	SnapshotKey  string
}

// RebuildEvent — событие о новой версии хранилища, публикуемое индексатором
// и потребляемое обслуживающими инстансами для горячей перезагрузки.
type RebuildEvent struct {
	EventID        string `json:"event_id"`
	EventTimestamp int64  `json:"event_timestamp"`
	ModelVersion   string `json:"model_version"`
	Dimension      int    `json:"dimension"`
	ItemCount      int64  `json:"item_count"`
	SnapshotKey    string `json:"snapshot_key"`
}

// INFRASTRUCTURE

// ModelInfo — идентичность модели энкодера: версия и размерность векторов.
type ModelInfo struct {
	ModelVersion string
	Dimension    int
}

// MAPPERS

func NewSearchReq(query string, topK int) *SearchReq {
	return &SearchReq{
		Query: query,
		TopK:  topK,
	}
}

func NewSearchRes(results []SearchResult) *SearchRes {
	return &SearchRes{
		Results: results,
	}
}

func NewSearchResult(productID int64, name string, price int64, imageURL string, productURL string, similarity float64) SearchResult {
	return SearchResult{
		ProductID:  productID,
		Name:       name,
		Price:      price,
		ImageURL:   imageURL,
		ProductURL: productURL,
		Similarity: similarity,
	}
}

func NewProductInfo(id int64, name string, price int64, imageURL string) ProductInfo {
	return ProductInfo{
		ID:       id,
		Name:     name,
		Price:    price,
		ImageURL: imageURL,
	}
}

func NewModelInfo(modelVersion string, dimension int) *ModelInfo {
	return &ModelInfo{
		ModelVersion: modelVersion,
		Dimension:    dimension,
	}
}

func NewRebuildRes(versionID int64, modelVersion string, dimension int, itemCount int64, snapshotKey string) *RebuildRes {
	return &RebuildRes{
		VersionID:    versionID,
		ModelVersion: modelVersion,
		Dimension:    dimension,
		ItemCount:    itemCount,
		SnapshotKey:  snapshotKey,
	}
}

func NewRebuildEvent(eventID string, eventTimestamp int64, modelVersion string, dimension int, itemCount int64, snapshotKey string) *RebuildEvent {
	return &RebuildEvent{
		EventID:        eventID,
		EventTimestamp: eventTimestamp,
		ModelVersion:   modelVersion,
		Dimension:      dimension,
		ItemCount:      itemCount,
		SnapshotKey:    snapshotKey,
	}
}
