package events

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const NotificationsExchange = "notifications_fanout"

const publishTimeout = 10 * time.Second

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes raw JSON events to a durable fanout exchange.
type AMQPPublisher struct {
	ch       amqpChannel
	exchange string
}

// NewAMQPPublisher declares the exchange on ch. Pass an *amqp.Channel in production.
func NewAMQPPublisher(ch amqpChannel, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = NotificationsExchange
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s exchange: %w", exchange, err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, messageID string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.exchange, err)
	}
	return nil
}
