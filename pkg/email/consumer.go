package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/internal/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewConsumer(logger *slog.Logger, conn *amqp.Connection, queue string, listener listener) *Consumer {
	return &Consumer{
		logger:   logger,
		conn:     conn,
		queue:    queue,
		listener: listener,
	}
}

type listener interface {
	Handle(ctx context.Context, eventType string, payload json.RawMessage) error
}

type Consumer struct {
	logger   *slog.Logger
	conn     *amqp.Connection
	queue    string
	listener listener
}

// Consume processes messages one at a time until ctx is cancelled or the channel is closed by the broker.
func (c *Consumer) Consume(ctx context.Context) error {
	channel, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %v", err)
	}
	defer channel.Close()

	if _, err := declareQueue(channel, c.queue); err != nil {
		return err
	}

	if err := channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch count: %v", err)
	}

	deliveries, err := channel.Consume(c.queue, "eventforge-email", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %q: %v", c.queue, err)
	}

	c.logger.InfoContext(ctx, "Consuming email events", "queue", c.queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("email delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

// handle acknowledges a delivery once the listener processed it. Messages which can never be processed are
// dropped. Failed messages are retried once.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	if d.CorrelationId != "" {
		ctx = middleware.NewContextWithCorrelationID(ctx, d.CorrelationId)
	}

	var e envelope
	if err := json.Unmarshal(d.Body, &e); err != nil {
		c.logger.ErrorContext(ctx, "Error unmarshalling email event", "error", err)
		c.nack(ctx, d, false)
		return
	}

	err := c.listener.Handle(ctx, e.Type, e.Payload)
	if err == nil {
		if err := d.Ack(false); err != nil {
			c.logger.ErrorContext(ctx, "Error acknowledging email event", "type", e.Type, "error", err)
		}
		return
	}

	if errdef.IsBadRequest(err) {
		c.logger.ErrorContext(ctx, "Dropping malformed email event", "type", e.Type, "error", err)
		c.nack(ctx, d, false)
		return
	}

	requeue := !d.Redelivered
	c.logger.ErrorContext(ctx, "Error handling email event", "type", e.Type, "requeue", requeue, "error", err)
	c.nack(ctx, d, requeue)
}

func (c *Consumer) nack(ctx context.Context, d amqp.Delivery, requeue bool) {
	if err := d.Nack(false, requeue); err != nil {
		c.logger.ErrorContext(ctx, "Error negatively acknowledging email event", "error", err)
	}
}
