// Package encoder реализует клиента сервиса векторизации текста.
// Сервис (sentence-transformers) рассматривается как чёрный ящик:
// текст → вектор фиксированной размерности. Вызов может быть медленным
// (инференс модели), поэтому клиент не держит блокировок и уважает контекст.
package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/jitter"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// Размер подбатча при пакетной векторизации каталога.
const encodeChunkSize = 64

// EncoderClient — HTTP-клиент сервиса векторизации с retry-логикой
// и ограничением конкурентности.
type EncoderClient struct {
	httpClient *http.Client
	cfg        *cfg.EncoderCfg
	logger     logger.Logger
}

func NewEncoderClient(cfg *cfg.EncoderCfg, logger logger.Logger) *EncoderClient {
	return &EncoderClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:        cfg,
		logger:     logger,
	}
}

type encodeRequest struct {
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Embeddings   [][]float32 `json:"embeddings"`
	ModelVersion string      `json:"model_version"`
}

type modelInfoResponse struct {
	ModelVersion string `json:"model_version"`
	Dimension    int    `json:"dimension"`
}

// EncodeQuery векторизует текст одного поискового запроса.
// Пустая строка — корректный вход, энкодер обязан вернуть вектор и для неё.
func (c *EncoderClient) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	const op = "EncoderClient.EncodeQuery"

	vectors, err := c.encodeWithRetry(ctx, []string{text})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return vectors[0], nil
}

// EncodeBatch векторизует тексты подбатчами с ограничением конкурентности.
// Результаты записываются по индексу исходной последовательности: порядок
// входа обязан сохраняться, он задаёт канонический порядок хранилища.
func (c *EncoderClient) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	const op = "EncoderClient.EncodeBatch"

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]float32, len(texts))
	errCh := make(chan error, 1)
	sem := make(chan struct{}, c.cfg.MaxConcurrent)

	var wg sync.WaitGroup
	for start := 0; start < len(texts); start += encodeChunkSize {
		end := start + encodeChunkSize
		if end > len(texts) {
			end = len(texts)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vectors, err := c.encodeWithRetry(ctx, texts[start:end])
			if err != nil {
				select {
				case errCh <- err:
					cancel() // первая же ошибка останавливает остальные подбатчи
				default:
				}
				return
			}

			copy(results[start:end], vectors)
		}(start, end)
	}

	wg.Wait()

	select {
	case err := <-errCh:
		return nil, e.Wrap(op, err)
	default:
	}

	return results, nil
}

// ModelInfo возвращает идентичность модели энкодера (версия, размерность).
func (c *EncoderClient) ModelInfo(ctx context.Context) (*usecase.ModelInfo, error) {
	const op = "EncoderClient.ModelInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/model", nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.Wrap(op, fmt.Errorf("encoder returned status %d", resp.StatusCode))
	}

	var body modelInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, e.Wrap(op, err)
	}

	return usecase.NewModelInfo(body.ModelVersion, body.Dimension), nil
}

// encodeWithRetry повторяет векторизацию с экспоненциальной задержкой и джиттером.
func (c *EncoderClient) encodeWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	const (
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		vectors, err := c.encode(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		if attempt == c.cfg.MaxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		c.logger.Warnf("encoding failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", e.ErrEncodingFailed, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: all %d attempts failed: %v", e.ErrEncodingFailed, c.cfg.MaxRetries, lastErr)
}

// encode выполняет один запрос векторизации.
func (c *EncoderClient) encode(ctx context.Context, texts []string) ([][]float32, error) {
	payload, err := json.Marshal(encodeRequest{Texts: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/encode", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("encoder returned status %d: %s", resp.StatusCode, body)
	}

	var body encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if len(body.Embeddings) != len(texts) {
		return nil, fmt.Errorf("encoder returned %d embeddings for %d texts", len(body.Embeddings), len(texts))
	}

	return body.Embeddings, nil
}
