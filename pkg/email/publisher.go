package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eventforge/eventforge/internal/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewPublisher opens a channel on conn and declares the durable queue events are published to.
func NewPublisher(logger *slog.Logger, conn *amqp.Connection, queue string) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	if _, err := declareQueue(channel, queue); err != nil {
		_ = channel.Close()
		return nil, err
	}

	return &Publisher{
		logger:  logger,
		channel: channel,
		queue:   queue,
	}, nil
}

type Publisher struct {
	logger  *slog.Logger
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex
}

func declareQueue(channel *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("failed to declare queue %q: %v", queue, err)
	}
	return q, nil
}

// Publish puts the event on the queue. The correlation id of ctx travels with the message so logs of the consumer
// can be matched with the request which caused the event.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := newEnvelope(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %v", event.Type(), err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type(),
		Body:         body,
	}
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		publishing.CorrelationId = id
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, "", p.queue, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish %s event: %v", event.Type(), err)
	}

	p.logger.InfoContext(ctx, "Published email event", "type", event.Type())
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
