package http

import (
	_ "github.com/DRSN-tech/search-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router      *chi.Mux
	defaultTopK int
	logger      logger.Logger
}

func NewRouter(router *chi.Mux, defaultTopK int, logger logger.Logger) *Router {
	return &Router{router: router, defaultTopK: defaultTopK, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	handler := NewSearchHandler(searchUC, r.defaultTopK, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/search", handler.search)
	})

	// Путь, на который ходят существующие клиенты
	r.router.Post("/recommend", handler.search)
}
