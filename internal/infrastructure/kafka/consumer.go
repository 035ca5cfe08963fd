package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Consumer слушает события пересборки хранилища и запускает горячую
// перезагрузку. Каждый инстанс сервиса читает в собственной consumer-группе:
// событие пересборки должны получить все реплики, а не одна из них.
type Consumer struct {
	reader   *kafka.Reader
	reloader usecase.StoreReloader
	logger   logger.Logger
}

func NewConsumer(cfg *cfg.KafkaCfg, reloader usecase.StoreReloader, logger logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     "search-backend-" + uuid.NewString(),
		StartOffset: kafka.LastOffset,
	})

	return &Consumer{
		reader:   reader,
		reloader: reloader,
		logger:   logger,
	}
}

// Run читает события до отмены контекста. Ошибка перезагрузки не роняет
// цикл: прежнее хранилище продолжает обслуживать запросы, событие будет
// применено при следующей пересборке либо при рестарте.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}

			c.logger.Warnf("Kafka fetch failed: %v", err)
			continue
		}

		var event usecase.RebuildEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warnf("malformed rebuild event at offset %d: %v", msg.Offset, err)
		} else if err := c.reloader.ApplyRebuild(ctx, &event); err != nil {
			c.logger.Errorf(err, "failed to apply rebuild event %s", event.EventID)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warnf("Kafka commit failed: %v", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
