package notify

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// EventQueue is the durable queue downstream consumers (analytics,
// search indexing) read domain events from. Fed by the outbox relay.
const EventQueue = "domain-events"

// AmqpEventPublisher relays outbox rows to RabbitMQ. The event type
// travels as a header so consumers can route without parsing the body.
type AmqpEventPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewAmqpEventPublisher(url string) (*AmqpEventPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		EventQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", EventQueue, err)
	}

	return &AmqpEventPublisher{conn: conn, channel: channel}, nil
}

// Publish enqueues one domain event payload.
func (p *AmqpEventPublisher) Publish(ctx context.Context, eventType, payload string) error {
	err := p.channel.PublishWithContext(ctx,
		"",         // default exchange
		EventQueue, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Type:         eventType,
			Body:         []byte(payload),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *AmqpEventPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
