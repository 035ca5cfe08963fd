package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	defaultTopK   int
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, defaultTopK int, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, defaultTopK: defaultTopK, logger: logger}
}

// search
//
//	@Summary		Семантический поиск по каталогу
//	@Description	Возвращает товары, ближайшие к тексту запроса по косинусной близости эмбеддингов
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchRequest	true	"Текст запроса и бюджет результатов"
//	@Success		200		{object}	searchResponse	"Ранжированная выдача"
//	@Failure		400		{object}	ErrorResponse	"Неположительный top_k"
//	@Router			/search [post]
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Намеренно мягкий контракт: существующие клиенты ожидают на битый JSON
		// пустую выдачу, а не транспортную ошибку
		h.logger.Warnf("unparseable search request: %v", err)
		WriteSuccess(w, http.StatusOK, emptySearchResponse())
		return
	}

	topK := h.defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	res, err := h.searchUsecase.Search(r.Context(), usecase.NewSearchReq(req.Query, topK))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}
