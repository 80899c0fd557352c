package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Exchanges are declared as durable topic exchanges on connect.
	Exchanges []string
	// ConnectAttempts is the number of dial attempts. Zero means one.
	ConnectAttempts uint
	RetryDelay      time.Duration
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, sets up a channel and declares the configured exchanges.
func NewClient(cfg Config) (*Client, error) {
	conn, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, exchange := range cfg.Exchanges {
		err = ch.ExchangeDeclare(
			exchange, // name
			"topic",  // kind
			true,     // durable
			false,    // delete when unused
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	zap.L().Info("RabbitMQ client connected", zap.Strings("exchanges", cfg.Exchanges))

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func dial(cfg Config) (*amqp.Connection, error) {
	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	var conn *amqp.Connection
	err := retry.Do(
		func() error {
			var err error
			conn, err = amqp.Dial(cfg.URL)
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(cfg.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			zap.L().Warn("failed to dial RabbitMQ", zap.Uint("attempt", attempt), zap.Error(err))
		}),
	)
	return conn, err
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to exchange under routingKey.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	zap.L().Debug("published event", zap.String("exchange", exchange), zap.String("routing_key", routingKey))
	return nil
}
