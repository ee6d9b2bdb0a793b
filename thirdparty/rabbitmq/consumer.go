package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer reads expiration messages and calls the internal expire endpoint,
// which owns the state change.
type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	expirer *Expirer
}

func NewConsumer(host string, port int, user, password, apiURL, apiKey string) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		conn:    conn,
		channel: channel,
		expirer: NewExpirer(apiURL, apiKey, &http.Client{Timeout: 10 * time.Second}),
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		ExpirationQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var m PaymentExpirationMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		logger.Error("[Consumer] unmarshal message", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	if err := c.expirer.Expire(ctx, m.OrderID); err != nil {
		logger.Error("[Consumer] expire order", zap.Uint64("order_id", m.OrderID), zap.String("error", err.Error()))
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
	logger.Info("[Consumer] order expiry handled", zap.Uint64("order_id", m.OrderID))
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// Expirer calls POST /internal/v1/order/{id}/expire on the API.
type Expirer struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewExpirer(apiURL, apiKey string, httpClient *http.Client) *Expirer {
	return &Expirer{apiURL: apiURL, apiKey: apiKey, http: httpClient}
}

// Expire returns an error only when the call should be retried: transport
// failures and 5xx. A 4xx means the order is gone or settled.
func (e *Expirer) Expire(ctx context.Context, orderID uint64) error {
	url := fmt.Sprintf("%s/internal/v1/order/%d/expire", e.apiURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "payment-expiration-consumer")

	resp, err := e.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 500 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
