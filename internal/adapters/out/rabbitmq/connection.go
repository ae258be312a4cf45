// Package rabbitmq publishes push notifications to the device fan-out service over AMQP.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

var ErrConnectionClosed = errors.New("amqp connection is closed")

// Connection hands out channels on a live AMQP connection.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection struct {
	url    string
	log    logrus.FieldLogger
	mu     sync.RWMutex
	conn   *amqp.Connection
	closed bool
}

// Dial connects to url, retrying up to attempts times with a fixed delay while
// the broker starts. A dropped connection is re-dialed on the next Channel call.
func Dial(ctx context.Context, url string, attempts int, delay time.Duration, log logrus.FieldLogger) (Connection, error) {
	c := &amqpConnection{url: url, log: log.WithField("component", "rabbitmq")}

	var err error
	for i := 1; i <= max(attempts, 1); i++ {
		if c.conn, err = amqp.Dial(url); err == nil {
			return c, nil
		}
		c.log.WithError(err).Warnf("broker not ready, retrying (%d/%d)", i, attempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
}

func (c *amqpConnection) Channel() (Channel, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return ch, nil
}

func (c *amqpConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}

func (c *amqpConnection) ensureOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}
	if c.conn != nil && !c.conn.IsClosed() {
		return nil
	}

	c.log.Warn("connection lost, reconnecting")
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}
	c.conn = conn
	return nil
}
