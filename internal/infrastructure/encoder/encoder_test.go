package encoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func testClient(baseURL string, maxRetries int) *EncoderClient {
	return NewEncoderClient(&cfg.EncoderCfg{
		BaseURL:        baseURL,
		MaxConcurrent:  4,
		MaxRetries:     maxRetries,
		RequestTimeout: 5 * time.Second,
	}, nopLogger{})
}

// echoEncoder отвечает на каждый текст вида "товар N" вектором [N, 1].
func echoEncoder(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/encode":
			var req encodeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			embeddings := make([][]float32, 0, len(req.Texts))
			for _, text := range req.Texts {
				var n float32
				fmt.Sscanf(text, "товар %f", &n)
				embeddings = append(embeddings, []float32{n, 1})
			}

			json.NewEncoder(w).Encode(encodeResponse{Embeddings: embeddings, ModelVersion: "mini-lm-v2"})
		case "/model":
			json.NewEncoder(w).Encode(modelInfoResponse{ModelVersion: "mini-lm-v2", Dimension: 2})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestEncodeQuery(t *testing.T) {
	srv := echoEncoder(t)
	defer srv.Close()

	client := testClient(srv.URL, 1)

	vector, err := client.EncodeQuery(context.Background(), "товар 7")
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 1}, vector)
}

func TestEncodeBatch_PreservesOrder(t *testing.T) {
	srv := echoEncoder(t)
	defer srv.Close()

	client := testClient(srv.URL, 1)

	// Больше одного подбатча, чтобы задействовать конкурентную сборку.
	texts := make([]string, 150)
	for i := range texts {
		texts[i] = fmt.Sprintf("товар %d", i)
	}

	vectors, err := client.EncodeBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, vector := range vectors {
		assert.Equal(t, []float32{float32(i), 1}, vector, "index %d", i)
	}
}

func TestEncodeBatch_Empty(t *testing.T) {
	client := testClient("http://127.0.0.1:1", 1)

	vectors, err := client.EncodeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestEncodeBatch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := testClient(srv.URL, 1)

	_, err := client.EncodeBatch(context.Background(), []string{"товар 1"})
	assert.ErrorIs(t, err, e.ErrEncodingFailed)
}

func TestEncodeQuery_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(encodeResponse{Embeddings: [][]float32{{1, 0}}, ModelVersion: "mini-lm-v2"})
	}))
	defer srv.Close()

	client := testClient(srv.URL, 2)

	vector, err := client.EncodeQuery(context.Background(), "товар 1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vector)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEncodeQuery_EmbeddingCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(encodeResponse{Embeddings: [][]float32{}, ModelVersion: "mini-lm-v2"})
	}))
	defer srv.Close()

	client := testClient(srv.URL, 1)

	_, err := client.EncodeQuery(context.Background(), "товар 1")
	assert.ErrorIs(t, err, e.ErrEncodingFailed)
}

func TestModelInfo(t *testing.T) {
	srv := echoEncoder(t)
	defer srv.Close()

	client := testClient(srv.URL, 1)

	info, err := client.ModelInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mini-lm-v2", info.ModelVersion)
	assert.Equal(t, 2, info.Dimension)
}

func TestModelInfo_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv.URL, 1)

	_, err := client.ModelInfo(context.Background())
	assert.Error(t, err)
}
