package usecase

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/internal/vectorstore"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeEncoder struct {
	encodeQuery func(ctx context.Context, text string) ([]float32, error)
	encodeBatch func(ctx context.Context, texts []string) ([][]float32, error)
	modelInfo   func(ctx context.Context) (*ModelInfo, error)
}

func (f *fakeEncoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	return f.encodeQuery(ctx, text)
}

func (f *fakeEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return f.encodeBatch(ctx, texts)
}

func (f *fakeEncoder) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	return f.modelInfo(ctx)
}

type fakeCatalogRepo struct {
	listActive      func(ctx context.Context) ([]domain.Product, error)
	getProductsInfo func(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

func (f *fakeCatalogRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	return f.listActive(ctx)
}

func (f *fakeCatalogRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	return f.getProductsInfo(ctx, ids)
}

type fakeVersionRepo struct {
	create           func(ctx context.Context, version *domain.StoreVersion) (*domain.StoreVersion, error)
	deactivateActive func(ctx context.Context) error
	getActive        func(ctx context.Context) (*domain.StoreVersion, error)
}

func (f *fakeVersionRepo) Create(ctx context.Context, version *domain.StoreVersion) (*domain.StoreVersion, error) {
	return f.create(ctx, version)
}

func (f *fakeVersionRepo) DeactivateActive(ctx context.Context) error {
	return f.deactivateActive(ctx)
}

func (f *fakeVersionRepo) GetActive(ctx context.Context) (*domain.StoreVersion, error) {
	return f.getActive(ctx)
}

type fakeCacheRepo struct {
	getProducts func(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	setProducts func(ctx context.Context, products []ProductInfo) error
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	return f.getProducts(ctx, ids)
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	if f.setProducts == nil {
		return nil
	}

	return f.setProducts(ctx, products)
}

type fakeSnapshotRepo struct {
	save func(ctx context.Context, key string, snap *vectorstore.Snapshot) error
	load func(ctx context.Context, key string) (*vectorstore.Snapshot, error)
}

func (f *fakeSnapshotRepo) Save(ctx context.Context, key string, snap *vectorstore.Snapshot) error {
	return f.save(ctx, key, snap)
}

func (f *fakeSnapshotRepo) Load(ctx context.Context, key string) (*vectorstore.Snapshot, error) {
	return f.load(ctx, key)
}

type fakeProducer struct {
	publishRebuild func(ctx context.Context, event *RebuildEvent) error
}

func (f *fakeProducer) PublishRebuild(ctx context.Context, event *RebuildEvent) error {
	if f.publishRebuild == nil {
		return nil
	}

	return f.publishRebuild(ctx, event)
}

// fakeTx реализует pgx.Tx ровно настолько, насколько нужно транзакционной
// обвязке: фиксация, откат и ничего больше.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}

	return f.tx, nil
}
