package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeSearchUC struct {
	search func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error)
}

func (f *fakeSearchUC) Search(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
	return f.search(ctx, req)
}

func doSearch(t *testing.T, uc usecase.SearchUC, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewSearchHandler(uc, 4, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.search(rec, req)

	return rec
}

func TestSearchHandler_HappyPath(t *testing.T) {
	uc := &fakeSearchUC{
		search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			assert.Equal(t, "чайник электрический", req.Query)
			assert.Equal(t, 2, req.TopK)

			return usecase.NewSearchRes([]usecase.SearchResult{
				usecase.NewSearchResult(1, "Чайник", 129900, "https://cdn.example.com/1.jpg", "/product/1", 0.97),
			}), nil
		},
	}

	rec := doSearch(t, uc, `{"query": "чайник электрический", "top_k": 2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(1), res.Results[0].ProductID)
	assert.Equal(t, "Чайник", res.Results[0].Name)
	assert.InDelta(t, 1299.0, res.Results[0].Price, 1e-9)
	assert.Equal(t, "/product/1", res.Results[0].ProductURL)
	assert.InDelta(t, 0.97, res.Results[0].Similarity, 1e-9)
}

func TestSearchHandler_DefaultTopK(t *testing.T) {
	uc := &fakeSearchUC{
		search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			assert.Equal(t, 4, req.TopK)
			return usecase.NewSearchRes(nil), nil
		},
	}

	rec := doSearch(t, uc, `{"query": "чайник"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchHandler_ExplicitZeroTopK(t *testing.T) {
	uc := &fakeSearchUC{
		search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			assert.Equal(t, 0, req.TopK)
			return nil, e.Wrap("search", e.ErrInvalidTopK)
		},
	}

	rec := doSearch(t, uc, `{"query": "чайник", "top_k": 0}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errRes ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errRes))
	assert.Equal(t, http.StatusBadRequest, errRes.Code)
}

func TestSearchHandler_BadJSONReturnsEmptyResults(t *testing.T) {
	uc := &fakeSearchUC{
		search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			t.Fatal("usecase must not be called on unparseable body")
			return nil, nil
		},
	}

	for _, body := range []string{`{`, `не json`, `{"query": 42}`} {
		rec := doSearch(t, uc, body)

		require.Equal(t, http.StatusOK, rec.Code, "body: %s", body)

		var res searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotNil(t, res.Results)
		assert.Empty(t, res.Results)
	}
}

func TestSearchHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "no active store", err: e.ErrNoActiveStoreVersion, wantCode: http.StatusServiceUnavailable},
		{name: "encoder failure", err: e.Wrap("encode", e.ErrEncodingFailed), wantCode: http.StatusBadGateway},
		{name: "unknown error", err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			uc := &fakeSearchUC{
				search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
					return nil, test.err
				},
			}

			rec := doSearch(t, uc, `{"query": "чайник"}`)
			assert.Equal(t, test.wantCode, rec.Code)
		})
	}
}

func TestSearchHandler_EmptyQueryAllowed(t *testing.T) {
	called := false
	uc := &fakeSearchUC{
		search: func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			called = true
			assert.Empty(t, req.Query)
			return usecase.NewSearchRes(nil), nil
		},
	}

	rec := doSearch(t, uc, `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
