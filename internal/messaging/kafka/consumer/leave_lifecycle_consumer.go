package consumer

import (
	"context"
	"encoding/json"

	"go-hrm/internal/events"
	"go-hrm/internal/leaverequest"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle membaca event keputusan cuti dan membuang cache
// balance milik employee terkait. Instance API lain yang memegang cache
// lama jadi ikut ter-invalidate, bukan hanya instance yang memproses
// approve/cancel-nya.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		cacheKey := leaverequest.BalanceCacheKey(event.EmployeeID, event.Year)
		if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
			log.Error("invalidate balance cache failed",
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("balance cache invalidated from leave lifecycle event",
			zap.String("event_type", event.EventType),
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
