package domain

import "time"

// StoreVersion описывает одну собранную версию хранилища эмбеддингов.
// Активной может быть только одна версия; смена активной версии выполняется
// в одной транзакции с созданием новой.
type StoreVersion struct {
	ID           int64
	ModelVersion string
	Dimension    int
	ItemCount    int64
	SnapshotKey  string
	CreatedAt    time.Time
	IsActive     bool
}

func NewStoreVersion(modelVersion string, dimension int, itemCount int64, snapshotKey string) *StoreVersion {
	return &StoreVersion{
		ModelVersion: modelVersion,
		Dimension:    dimension,
		ItemCount:    itemCount,
		SnapshotKey:  snapshotKey,
	}
}
