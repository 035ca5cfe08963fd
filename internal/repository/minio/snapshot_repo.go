package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/vectorstore"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// SnapshotRepo хранит снапшоты хранилища эмбеддингов в MinIO.
// Индексатор загружает собранный снапшот, обслуживающие инстансы скачивают
// его при старте и при горячей перезагрузке.
type SnapshotRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewSnapshotRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *SnapshotRepo {
	return &SnapshotRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Save сериализует снапшот и загружает его в бакет под указанным ключом.
func (s *SnapshotRepo) Save(ctx context.Context, key string, snap *vectorstore.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	reader := bytes.NewReader(data)
	_, err = s.mc.PutObject(ctx, s.cfg.BucketName, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Load скачивает и разбирает снапшот по ключу.
func (s *SnapshotRepo) Load(ctx context.Context, key string) (*vectorstore.Snapshot, error) {
	obj, err := s.mc.GetObject(ctx, s.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSnapshotNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	snap, err := vectorstore.UnmarshalSnapshot(data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return snap, nil
}
