package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки построения индекса
	ErrMissingProductID   = fmt.Errorf("catalog record is missing product id")
	ErrDuplicateProductID = fmt.Errorf("duplicate product id in store")
	ErrDimensionMismatch  = fmt.Errorf("vector dimension mismatch")
	ErrEmptyStore         = fmt.Errorf("embedding store is empty")
	ErrEncodingFailed     = fmt.Errorf("text encoding failed")

	// Ошибки загрузки снапшота
	ErrModelMismatch        = fmt.Errorf("snapshot model does not match encoder model")
	ErrNoActiveStoreVersion = fmt.Errorf("no active store version")
	ErrSnapshotNotFound     = fmt.Errorf("store snapshot not found")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки поисковых запросов
	ErrInvalidTopK  = fmt.Errorf("top_k must be positive")
	ErrStaleProduct = fmt.Errorf("ranked product is missing from catalog")

	// 4xx/5xx
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
