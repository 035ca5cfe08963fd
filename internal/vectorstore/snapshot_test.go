package vectorstore

import (
	"testing"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := mustStore(t, 3, []domain.Embedding{
		{ProductID: 1, Vector: []float32{0.1, -0.2, 0.30000001}},
		{ProductID: 2, Vector: []float32{1e-20, 3.4e38, -1.5}},
		{ProductID: 3, Vector: []float32{0, 0, 0}},
	})

	data, err := store.Snapshot().Marshal()
	require.NoError(t, err)

	snap, err := UnmarshalSnapshot(data)
	require.NoError(t, err)

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, store.ModelVersion(), restored.ModelVersion())
	assert.Equal(t, store.Dimension(), restored.Dimension())
	require.Equal(t, store.Len(), restored.Len())

	// Порядок и значения до бита совпадают с исходными.
	assert.Equal(t, store.Snapshot(), restored.Snapshot())
}

func TestSnapshotRoundTrip_Repeated(t *testing.T) {
	store := mustStore(t, 2, []domain.Embedding{
		{ProductID: 42, Vector: []float32{0.33333334, -0.9999999}},
	})

	snap := store.Snapshot()
	for i := 0; i < 3; i++ {
		data, err := snap.Marshal()
		require.NoError(t, err)

		snap, err = UnmarshalSnapshot(data)
		require.NoError(t, err)
	}

	assert.Equal(t, store.Snapshot(), snap)
}

func TestFromSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		snap    *Snapshot
		wantErr error
	}{
		{
			name: "duplicate product id",
			snap: &Snapshot{
				ModelVersion: "m",
				Dimension:    1,
				Items: []SnapshotItem{
					{ProductID: 1, Embedding: []float32{1}},
					{ProductID: 1, Embedding: []float32{2}},
				},
			},
			wantErr: e.ErrDuplicateProductID,
		},
		{
			name: "dimension mismatch",
			snap: &Snapshot{
				ModelVersion: "m",
				Dimension:    2,
				Items: []SnapshotItem{
					{ProductID: 1, Embedding: []float32{1}},
				},
			},
			wantErr: e.ErrDimensionMismatch,
		},
		{
			name: "missing product id",
			snap: &Snapshot{
				ModelVersion: "m",
				Dimension:    1,
				Items: []SnapshotItem{
					{ProductID: 0, Embedding: []float32{1}},
				},
			},
			wantErr: e.ErrMissingProductID,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromSnapshot(test.snap)
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestUnmarshalSnapshot_BadJSON(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte(`{"items": [`))
	assert.Error(t, err)
}
