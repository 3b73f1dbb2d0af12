// Package events moves order events out of the service. Handlers push events onto a
// Redis list after commit; a relay drains the list into a RabbitMQ fanout exchange so
// that a broker outage never blocks order processing.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"ordering/internal/core/domain/model/order"

	"github.com/go-redis/redis/v8"
)

const DefaultQueueKey = "ordering:events"

// RedisEmitter implements ports.EventEmitter by pushing JSON events onto a list.
type RedisEmitter struct {
	rdb      redis.Cmdable
	queueKey string
}

func NewRedisEmitter(rdb redis.Cmdable, queueKey string) *RedisEmitter {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	return &RedisEmitter{rdb: rdb, queueKey: queueKey}
}

func (e *RedisEmitter) Emit(ctx context.Context, event order.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	if err = e.rdb.LPush(ctx, e.queueKey, body).Err(); err != nil {
		return fmt.Errorf("push %s event: %w", event.Type, err)
	}
	return nil
}
