package vectorstore

import (
	"math"
	"testing"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStore(t *testing.T, dimension int, embeddings []domain.Embedding) *Store {
	t.Helper()

	store, err := New("test-model-v1", dimension, embeddings)
	require.NoError(t, err)

	return store
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		dimension  int
		embeddings []domain.Embedding
		wantErr    error
	}{
		{
			name:      "valid store",
			dimension: 2,
			embeddings: []domain.Embedding{
				{ProductID: 1, Vector: []float32{1, 0}},
				{ProductID: 2, Vector: []float32{0, 1}},
			},
		},
		{
			name:       "empty store is valid",
			dimension:  3,
			embeddings: nil,
		},
		{
			name:      "zero product id",
			dimension: 2,
			embeddings: []domain.Embedding{
				{ProductID: 0, Vector: []float32{1, 0}},
			},
			wantErr: e.ErrMissingProductID,
		},
		{
			name:      "duplicate product id",
			dimension: 2,
			embeddings: []domain.Embedding{
				{ProductID: 7, Vector: []float32{1, 0}},
				{ProductID: 7, Vector: []float32{0, 1}},
			},
			wantErr: e.ErrDuplicateProductID,
		},
		{
			name:      "vector dimension mismatch",
			dimension: 3,
			embeddings: []domain.Embedding{
				{ProductID: 1, Vector: []float32{1, 0}},
			},
			wantErr: e.ErrDimensionMismatch,
		},
		{
			name:      "non-positive dimension",
			dimension: 0,
			wantErr:   e.ErrDimensionMismatch,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store, err := New("test-model-v1", test.dimension, test.embeddings)
			if test.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(test.embeddings), store.Len())
			assert.Equal(t, test.dimension, store.Dimension())
			assert.Equal(t, "test-model-v1", store.ModelVersion())
		})
	}
}

func TestSearch_Ranking(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{1, 0}},
		{ProductID: 2, Vector: []float32{0, 1}},
		{ProductID: 3, Vector: []float32{0.9, 0.1}},
	})

	hits, err := store.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(1), hits[0].ProductID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)

	assert.Equal(t, int64(3), hits[1].ProductID)
	assert.InDelta(t, 0.9938837346736188, hits[1].Score, 1e-6)
}

func TestSearch_Deterministic(t *testing.T) {
	store := mustStore(t, 3, []domain.Embedding{
		{ProductID: 10, Vector: []float32{0.3, 0.5, 0.2}},
		{ProductID: 20, Vector: []float32{0.1, 0.9, 0.4}},
		{ProductID: 30, Vector: []float32{0.7, 0.2, 0.6}},
		{ProductID: 40, Vector: []float32{0.5, 0.5, 0.5}},
	})

	first, err := store.Search([]float32{0.2, 0.4, 0.9}, 4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := store.Search([]float32{0.2, 0.4, 0.9}, 4)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestSearch_TiesKeepStoreOrder(t *testing.T) {
	// Записи 2 и 3 идентичны, счёт равный: порядок хранилища решает.
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 5, Vector: []float32{0, 1}},
		{ProductID: 2, Vector: []float32{1, 0}},
		{ProductID: 3, Vector: []float32{1, 0}},
	})

	hits, err := store.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, int64(2), hits[0].ProductID)
	assert.Equal(t, int64(3), hits[1].ProductID)
	assert.Equal(t, int64(5), hits[2].ProductID)
}

func TestSearch_TopKClamped(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{1, 0}},
		{ProductID: 2, Vector: []float32{0, 1}},
	})

	hits, err := store.Search([]float32{1, 1}, 100)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_InvalidTopK(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{1, 0}},
	})

	for _, topK := range []int{0, -1, -100} {
		_, err := store.Search([]float32{1, 0}, topK)
		assert.ErrorIs(t, err, e.ErrInvalidTopK)
	}
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{1, 0}},
	})

	_, err := store.Search([]float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, e.ErrDimensionMismatch)
}

func TestSearch_ZeroNormVectorScoresZero(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{0, 0}},
		{ProductID: 2, Vector: []float32{1, 0}},
	})

	hits, err := store.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(2), hits[0].ProductID)
	assert.Equal(t, int64(1), hits[1].ProductID)
	assert.Zero(t, hits[1].Score)
}

func TestSearch_ZeroNormQueryScoresZero(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{1, 0}},
	})

	hits, err := store.Search([]float32{0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Score)
}

func TestSearch_InvalidScoresExcluded(t *testing.T) {
	inf := float32(math.Inf(1))

	// Запись с бесконечной компонентой даёт невалидный счёт и выпадает из
	// выдачи, не занимая место в бюджете.
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 1, Vector: []float32{inf, 0}},
		{ProductID: 2, Vector: []float32{1, 0}},
		{ProductID: 3, Vector: []float32{0, 1}},
	})

	hits, err := store.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(2), hits[0].ProductID)
	assert.Equal(t, int64(3), hits[1].ProductID)
}

func TestSearch_EmptyStore(t *testing.T) {
	store := mustStore(t, 2, nil)

	hits, err := store.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
