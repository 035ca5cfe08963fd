package vectorstore

import (
	"encoding/json"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
)

// Snapshot — обменное представление хранилища: заголовок с идентичностью модели
// и упорядоченный список записей. Формат обязан сохранять порядок записей и
// значения компонент вектора с точностью float32 при любом количестве циклов
// сериализации.
type Snapshot struct {
	ModelVersion string         `json:"model_version"`
	Dimension    int            `json:"dimension"`
	Items        []SnapshotItem `json:"items"`
}

// SnapshotItem — одна запись снапшота.
type SnapshotItem struct {
	ProductID int64     `json:"product_id"`
	Embedding []float32 `json:"embedding"`
}

// Snapshot возвращает обменное представление хранилища.
func (s *Store) Snapshot() *Snapshot {
	items := make([]SnapshotItem, 0, len(s.entries))
	for _, entry := range s.entries {
		items = append(items, SnapshotItem{
			ProductID: entry.ProductID,
			Embedding: entry.Vector,
		})
	}

	return &Snapshot{
		ModelVersion: s.modelVersion,
		Dimension:    s.dimension,
		Items:        items,
	}
}

// FromSnapshot восстанавливает хранилище из снапшота с полной валидацией:
// испорченный снапшот (дубликат, несовпадение размерности) не публикуется.
func FromSnapshot(snap *Snapshot) (*Store, error) {
	embeddings := make([]domain.Embedding, 0, len(snap.Items))
	for _, item := range snap.Items {
		embeddings = append(embeddings, *domain.NewEmbedding(item.ProductID, item.Embedding))
	}

	return New(snap.ModelVersion, snap.Dimension, embeddings)
}

// Marshal сериализует снапшот в JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	const op = "Snapshot.Marshal"

	data, err := json.Marshal(s)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return data, nil
}

// UnmarshalSnapshot разбирает снапшот из JSON.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	const op = "vectorstore.UnmarshalSnapshot"

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &snap, nil
}
