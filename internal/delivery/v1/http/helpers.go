package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// searchRequest — внешний формат запроса. TopK — указатель, чтобы отличать
// отсутствующее поле (бюджет по умолчанию) от явно переданного нуля (ошибка).
type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k"`
}

// searchResultItem — внешний формат одного результата.
// Имена полей зафиксированы существующими клиентами фронтенда.
type searchResultItem struct {
	ProductID  int64   `json:"ProductID"`
	Name       string  `json:"ProductName"`
	Price      float64 `json:"Price"`
	ImageURL   string  `json:"ImageURL"`
	ProductURL string  `json:"ProductURL"`
	Similarity float64 `json:"similarity"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrInvalidTopK):
		return http.StatusBadRequest, e.ErrInvalidTopK.Error()
	case errors.Is(err, e.ErrEncodingFailed):
		return http.StatusBadGateway, e.ErrEncodingFailed.Error()
	case errors.Is(err, e.ErrNoActiveStoreVersion):
		return http.StatusServiceUnavailable, e.ErrNoActiveStoreVersion.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func toSearchResponse(res *usecase.SearchRes) searchResponse {
	items := make([]searchResultItem, 0, len(res.Results))
	for _, result := range res.Results {
		items = append(items, searchResultItem{
			ProductID:  result.ProductID,
			Name:       result.Name,
			Price:      centsToUnits(result.Price),
			ImageURL:   result.ImageURL,
			ProductURL: result.ProductURL,
			Similarity: result.Similarity,
		})
	}

	return searchResponse{Results: items}
}

func emptySearchResponse() searchResponse {
	return searchResponse{Results: []searchResultItem{}}
}

// centsToUnits переводит хранимую цену в копейках во внешнее денежное значение.
func centsToUnits(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
