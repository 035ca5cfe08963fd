package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Текстовые и числовые поля каталога допускают NULL: нормализация выполняется
// при конвертации в domain-сущность.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        *string    `db:"name"`
	Description *string    `db:"description"`
	Price       *int64     `db:"price"`
	ImageURL    *string    `db:"image_url"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsArchived  bool       `db:"is_archived"`
}

// StoreVersionModel представляет запись таблицы store_versions в PostgreSQL.
type StoreVersionModel struct {
	ID           int64     `db:"id"`
	ModelVersion string    `db:"model_version"`
	Dimension    int       `db:"dimension"`
	ItemCount    int64     `db:"item_count"`
	SnapshotKey  string    `db:"snapshot_key"`
	CreatedAt    time.Time `db:"created_at"`
	IsActive     bool      `db:"is_active"`
}
