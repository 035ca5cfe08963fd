package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/encoder"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/kafka"
	s3Repo "github.com/DRSN-tech/search-backend/internal/repository/minio"
	"github.com/DRSN-tech/search-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/search-backend/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/clients"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// RunIndexer выполняет однократную пересборку хранилища эмбеддингов
// и публикует событие о новой версии. Запускается по расписанию или вручную.
func RunIndexer() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()

	prConv := pgdbConv.NewProductConverterImpl()
	svConv := pgdbConv.NewStoreVersionConverterImpl()

	catalogRepo := pgdb.NewCatalogRepo(db.Pool, prConv)
	versionRepo := pgdb.NewStoreVersionRepo(db.Pool, svConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	snapshotRepo := s3Repo.NewSnapshotRepo(minioClient, cfg.Minio)

	encoderClient := encoder.NewEncoderClient(cfg.Encoder, logger)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureTopic(30 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}

	indexUC := usecase.NewIndexUC(
		catalogRepo,
		versionRepo,
		snapshotRepo,
		encoderClient,
		producer,
		db.Pool,
		logger,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, err := indexUC.Rebuild(ctx)
	if err != nil {
		logger.Errorf(err, "store rebuild failed")
		os.Exit(1)
	}

	logger.Infof("store rebuilt: version=%d model=%s dim=%d items=%d snapshot=%s",
		res.VersionID, res.ModelVersion, res.Dimension, res.ItemCount, res.SnapshotKey)
}
