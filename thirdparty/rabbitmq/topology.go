package rabbitmq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const (
	ExpirationExchange   = "payment_expiration_exchange"
	ExpirationQueue      = "payment_expiration_queue"
	ExpirationRoutingKey = "payment_expiration"
)

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology sets up the delayed exchange (rabbitmq_delayed_message_exchange
// plugin) and the queue the expiry worker reads from.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		ExpirationExchange,  // name
		"x-delayed-message", // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		ExpirationQueue, // name
		true,            // durable
		false,           // auto-delete
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := channel.QueueBind(ExpirationQueue, ExpirationRoutingKey, ExpirationExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}
