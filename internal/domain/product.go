package domain

import "time"

// Product описывает товар каталога.
// Каталог владеет записями; поисковый контур только читает их.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64 // Цена хранится в копейках
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsArchived  bool
}

func NewProduct(id int64, name string, description string, price int64, imageURL string) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}

// RepresentationText возвращает текст, по которому строится эмбеддинг товара:
// название и описание через один пробел. Отсутствующие поля дают пустые строки,
// это не ошибка.
func (p *Product) RepresentationText() string {
	return p.Name + " " + p.Description
}
