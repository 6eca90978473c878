package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer binds a durable queue to a topic exchange for the given routing
// keys. Deliveries are manual-ack; callers decide Ack vs Nack per message.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	prefetch int
}

func NewConsumer(url, exchange, queue string, keys []string, prefetch int) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		cleanup()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	for _, rk := range keys {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			cleanup()
			return nil, fmt.Errorf("bind %s: %w", rk, err)
		}
	}
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		cleanup()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: q.Name, prefetch: prefetch}, nil
}

func (c *Consumer) Deliveries(ctx context.Context, consumerTag string) (<-chan amqp.Delivery, error) {
	return c.ch.ConsumeWithContext(ctx, c.queue, consumerTag, false, false, false, false, nil)
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
