package usecase

import "context"

type EncoderInfra interface {
	// EncodeQuery векторизует один текст запроса.
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	// EncodeBatch векторизует тексты, сохраняя порядок входной последовательности.
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	// ModelInfo возвращает идентичность модели энкодера.
	ModelInfo(ctx context.Context) (*ModelInfo, error)
}

type EventProducerInfra interface {
	PublishRebuild(ctx context.Context, event *RebuildEvent) error
}
