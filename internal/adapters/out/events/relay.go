package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Publisher delivers one serialized event to the notification broker.
type Publisher interface {
	Publish(ctx context.Context, messageID string, body []byte) error
}

// Relay moves events from the Redis queue to a Publisher. Each event is parked on a
// processing list while it is published and removed only after the broker accepted it,
// so a crash between the two steps redelivers instead of losing the event.
type Relay struct {
	rdb           redis.Cmdable
	queueKey      string
	processingKey string
	publisher     Publisher
	wait          time.Duration
	logger        *slog.Logger
}

func NewRelay(rdb redis.Cmdable, queueKey string, publisher Publisher, logger *slog.Logger) *Relay {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	return &Relay{
		rdb:           rdb,
		queueKey:      queueKey,
		processingKey: queueKey + ":processing",
		publisher:     publisher,
		wait:          time.Second,
		logger:        logger.With("component", "events.relay"),
	}
}

// Recover returns events stranded on the processing list to the queue.
func (r *Relay) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := r.rdb.RPopLPush(ctx, r.processingKey, r.queueKey).Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

// Drain publishes up to limit events and reports how many were delivered. It returns
// early when the queue stays empty for the relay's wait interval.
func (r *Relay) Drain(ctx context.Context, limit int) (int, error) {
	delivered := 0
	for delivered < limit {
		raw, err := r.rdb.BRPopLPush(ctx, r.queueKey, r.processingKey, r.wait).Result()
		if errors.Is(err, redis.Nil) {
			return delivered, nil
		}
		if err != nil {
			return delivered, err
		}

		id := messageID(raw)
		if err = r.publisher.Publish(ctx, id, []byte(raw)); err != nil {
			// stays on the processing list until Recover
			r.logger.WarnContext(ctx, "event publish failed", "event_id", id, "error", err)
			return delivered, err
		}
		if err = r.rdb.LRem(ctx, r.processingKey, 1, raw).Err(); err != nil {
			return delivered, err
		}
		delivered++
	}
	return delivered, nil
}

func messageID(raw string) string {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return ""
	}
	return envelope.ID
}
