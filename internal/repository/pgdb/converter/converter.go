//go:generate goverter gen github.com/DRSN-tech/search-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/DRSN-tech/search-backend/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOptionalString
// goverter:extend ConvertStringToPointer
// goverter:extend ConvertOptionalInt64
// goverter:extend ConvertInt64ToPointer
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// StoreVersionConverter преобразует сущности StoreVersion между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type StoreVersionConverter interface {
	ToModel(entity *domain.StoreVersion) *StoreVersionModel
	ToEntity(model *StoreVersionModel) *domain.StoreVersion
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

// ConvertOptionalString нормализует NULL-строку каталога в пустую строку.
func ConvertOptionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ConvertStringToPointer(s string) *string {
	return &s
}

// ConvertOptionalInt64 нормализует NULL-число каталога в ноль.
func ConvertOptionalInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func ConvertInt64ToPointer(v int64) *int64 {
	return &v
}
