// Package vectorstore реализует неизменяемое in-memory хранилище эмбеддингов
// и точный поиск ближайших товаров по косинусной близости.
package vectorstore

import (
	"math"
	"sort"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
)

// Store — упорядоченная коллекция пар (ProductID, Vector) фиксированной размерности.
// Порядок записей фиксируется при сборке и не меняется за время жизни экземпляра:
// позиция записи — канонический индекс, по которому счёт сопоставляется с товаром.
// После создания Store только читается, поэтому безопасен для конкурентных запросов.
type Store struct {
	entries      []domain.Embedding
	dimension    int
	modelVersion string
}

// Hit — один результат поиска: идентификатор товара и его косинусная близость к запросу.
type Hit struct {
	ProductID int64
	Score     float64
}

// New собирает хранилище из готовых эмбеддингов.
// Порядок входной последовательности сохраняется. Возвращает ошибку при
// дубликате идентификатора, нулевом идентификаторе или несовпадении размерности.
func New(modelVersion string, dimension int, embeddings []domain.Embedding) (*Store, error) {
	const op = "vectorstore.New"

	if dimension <= 0 {
		return nil, e.Wrap(op, e.ErrDimensionMismatch)
	}

	seen := make(map[int64]struct{}, len(embeddings))
	entries := make([]domain.Embedding, 0, len(embeddings))
	for _, emb := range embeddings {
		if emb.ProductID == 0 {
			return nil, e.Wrap(op, e.ErrMissingProductID)
		}
		if _, ok := seen[emb.ProductID]; ok {
			return nil, e.Wrap(op, e.ErrDuplicateProductID)
		}
		if len(emb.Vector) != dimension {
			return nil, e.Wrap(op, e.ErrDimensionMismatch)
		}

		seen[emb.ProductID] = struct{}{}
		entries = append(entries, emb)
	}

	return &Store{
		entries:      entries,
		dimension:    dimension,
		modelVersion: modelVersion,
	}, nil
}

// Len возвращает количество записей в хранилище.
func (s *Store) Len() int {
	return len(s.entries)
}

// Dimension возвращает размерность векторов хранилища.
func (s *Store) Dimension() int {
	return s.dimension
}

// ModelVersion возвращает идентификатор модели, которой построены векторы.
func (s *Store) ModelVersion() string {
	return s.modelVersion
}

// Search ранжирует всё хранилище по косинусной близости к вектору запроса
// и возвращает не более topK результатов по убыванию счёта.
// Равные счёты сохраняют порядок хранилища (стабильная сортировка), поэтому
// результат детерминирован для одинаковых входов. Записи с некорректным
// счётом (NaN/Inf) исключаются и не добиваются до topK.
func (s *Store) Search(query []float32, topK int) ([]Hit, error) {
	const op = "Store.Search"

	if topK <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidTopK)
	}
	if len(query) != s.dimension {
		return nil, e.Wrap(op, e.ErrDimensionMismatch)
	}

	hits := make([]Hit, 0, len(s.entries))
	for _, entry := range s.entries {
		score := cosine(query, entry.Vector)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}

		hits = append(hits, Hit{ProductID: entry.ProductID, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if topK > len(hits) {
		topK = len(hits)
	}

	return hits[:topK], nil
}

// cosine вычисляет косинусную близость двух векторов одинаковой длины.
// Для вектора с нулевой нормой возвращает 0, а не ошибку деления.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
