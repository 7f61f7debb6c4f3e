// Package rabbitmq publishes order notifications to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"storefront/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const routingKeyPrefix = "order.status_changed."

// Publisher implements ports.OrderEventPublisher. Events are routed by the new
// status, e.g. order.status_changed.shipped.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger
}

// NewPublisher declares exchange as a durable topic exchange.
func NewPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		conn:     conn,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
	}, nil
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	key := RoutingKey(event.Status)
	if err = ch.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", key, event.OrderID, err)
	}

	p.logger.DebugContext(ctx, "order event published",
		"order_id", event.OrderID, "routing_key", key)
	return nil
}

func RoutingKey(status string) string {
	return routingKeyPrefix + status
}

func newPublishing(event ports.OrderStatusChangedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.OrderID + ":" + event.Status + ":" + event.OccurredAt.UTC().Format("20060102T150405.000000000"),
		Timestamp:    event.OccurredAt,
		Type:         "order.status_changed",
		Body:         body,
	}, nil
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) NopPublisher {
	return NopPublisher{logger: logger.With("component", "nop_publisher")}
}

func (p NopPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	p.logger.DebugContext(ctx, "order event dropped, no broker configured",
		"order_id", event.OrderID, "status", event.Status)
	return nil
}
