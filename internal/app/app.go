package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/search-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/search-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/encoder"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/kafka"
	s3Repo "github.com/DRSN-tech/search-backend/internal/repository/minio"
	"github.com/DRSN-tech/search-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/search-backend/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/search-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/search-backend/internal/repository/redis/converter/generated"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/clients"
	"github.com/DRSN-tech/search-backend/pkg/closer"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/DRSN-tech/search-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	cl := closer.NewCloser(5 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	svConv := pgdbConv.NewStoreVersionConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

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

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, logger)

	encoderClient := encoder.NewEncoderClient(cfg.Encoder, logger)

	stores := usecase.NewStoreManager(versionRepo, snapshotRepo, encoderClient, logger)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := stores.LoadActive(loadCtx); err != nil {
		loadCancel()
		if errors.Is(err, e.ErrNoActiveStoreVersion) {
			// Сервис поднимается и до первой сборки индекса, отвечая 503 на поиск.
			logger.Warnf("no active store version yet, waiting for first rebuild")
		} else {
			logger.Errorf(err, "failed to load active store")
			os.Exit(1)
		}
	} else {
		loadCancel()
	}

	searchUC := usecase.NewSearchUC(stores, encoderClient, catalogRepo, cacheRepo, logger)

	consumer := kafka.NewConsumer(cfg.Kafka, stores, logger)
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	go consumer.Run(consumerCtx)
	cl.Add(func(ctx context.Context) error {
		consumerCancel()
		return consumer.Close()
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg.Search.DefaultTopK, logger)
	router.Init(searchUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("resource cleanup finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
