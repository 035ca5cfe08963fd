package domain

// Embedding представляет вектор одного товара.
// ProductID ссылается на Product.ID; вектор имеет фиксированную размерность,
// единую для всего хранилища.
type Embedding struct {
	ProductID int64
	Vector    []float32
}

func NewEmbedding(productID int64, vector []float32) *Embedding {
	return &Embedding{
		ProductID: productID,
		Vector:    vector,
	}
}
