package worker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/cache"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/config"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

// Run consumes task events and invalidates the cached list/summary
// payloads. The handlers already invalidate locally; the consumer keeps
// every replica's view consistent when several instances share Redis.
// One consumer per process; the consumer group shares partitions.
func Run(ctx context.Context, cfg *config.Config, c *cache.Cache) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  "task-dashboard-workers",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Kafka consumer started", "topic", cfg.KafkaTopic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		handleEvent(ctx, c, msg.Value)
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleEvent(ctx context.Context, c *cache.Cache, payload []byte) {
	var event models.TaskEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		// Commit anyway upstream; a malformed event must not block the partition.
		logger.Error(ctx, "Worker unmarshal failed", "error", err, "payload", string(payload))
		return
	}
	logger.Debug(ctx, "Task event received", "action", event.Action, "task_id", event.TaskID)
	c.Invalidate(ctx, cache.KeyTaskList, cache.KeyReportSummary)
}
