package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// PaymentExpirationMessage asks the worker to expire an unpaid wallet order.
type PaymentExpirationMessage struct {
	OrderID   uint64    `json:"order_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExpirationPublisher interface {
	PublishPaymentExpiration(ctx context.Context, msg PaymentExpirationMessage) error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) PublishPaymentExpiration(ctx context.Context, msg PaymentExpirationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		ExpirationExchange,   // exchange
		ExpirationRoutingKey, // routing key
		false,                // mandatory
		false,                // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
			Headers: amqp091.Table{
				"x-delay": delayMillis(msg.ExpiresAt, time.Now()),
			},
		},
	)
}

func delayMillis(expiresAt, now time.Time) int64 {
	d := expiresAt.Sub(now).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
