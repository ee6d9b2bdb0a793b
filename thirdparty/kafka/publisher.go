package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderPaymentFailed = "order.payment_failed"
	EventOrderExpired       = "order.expired"
	EventOrderStatusChanged = "order.status_changed"
	EventRegistrationPaid   = "registration.paid"
	EventRegistrationFailed = "registration.payment_failed"
)

// Event is the envelope written to the order events topic.
type Event struct {
	EventID        string                 `json:"eventId"`
	EventType      string                 `json:"eventType"`
	OccurredAt     time.Time              `json:"occurredAt"`
	OrderID        uint64                 `json:"orderId,omitempty"`
	RegistrationID uint64                 `json:"registrationId,omitempty"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
}

type Publisher interface {
	PublishEvent(ctx context.Context, ev Event) error
	Close() error
}

type writerPublisher struct {
	w *kafka.Writer
}

func NewPublisher(brokers []string, topic string) Publisher {
	return &writerPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// PublishEvent fills EventID and OccurredAt when empty. Messages are keyed by
// order (or registration) so events for one entity stay ordered.
func (p *writerPublisher) PublishEvent(ctx context.Context, ev Event) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(messageKey(ev)),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.EventType)},
		},
	})
}

func (p *writerPublisher) Close() error {
	return p.w.Close()
}

func messageKey(ev Event) string {
	if ev.OrderID != 0 {
		return "order-" + strconv.FormatUint(ev.OrderID, 10)
	}
	return "registration-" + strconv.FormatUint(ev.RegistrationID, 10)
}
