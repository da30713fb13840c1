package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// NoticeQueue is the durable queue the delivery workers (email, sms)
// consume from.
const NoticeQueue = "notifications"

// AmqpNoticer enqueues durable notices on RabbitMQ. Unlike the realtime
// push, a notice survives process restarts: it is persisted by the broker
// until a delivery worker acknowledges it.
type AmqpNoticer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewAmqpNoticer(url string) (*AmqpNoticer, error) {
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
		NoticeQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", NoticeQueue, err)
	}

	return &AmqpNoticer{conn: conn, channel: channel}, nil
}

type noticeMessage struct {
	UserID  string    `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Notice enqueues one durable notice.
func (n *AmqpNoticer) Notice(ctx context.Context, userID, subject, body string) error {
	msg, err := json.Marshal(noticeMessage{
		UserID:  userID,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		"",          // default exchange
		NoticeQueue, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         msg,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notice: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (n *AmqpNoticer) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}

var _ Noticer = (*AmqpNoticer)(nil)
