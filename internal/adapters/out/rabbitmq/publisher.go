package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultPushExchange = "push_notifications"

// PushPublisher implements ports.PushPublisher. Every notification goes to a
// durable topic exchange with the routing key "push.<recipient kind>".
type PushPublisher struct {
	conn     Connection
	exchange string
}

func NewPushPublisher(conn Connection, exchange string) *PushPublisher {
	if exchange == "" {
		exchange = DefaultPushExchange
	}
	return &PushPublisher{conn: conn, exchange: exchange}
}

func (p *PushPublisher) PublishPush(ctx context.Context, push ports.PushNotification) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(push)
	if err != nil {
		return fmt.Errorf("failed to marshal push notification: %w", err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(push.Recipient), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    push.MessageID,
		Type:         push.MessageType,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish push notification: %w", err)
	}

	return nil
}

// RoutingKey derives the routing key from a recipient reference such as "Driver(<id>)".
func RoutingKey(recipient string) string {
	kind, _, _ := strings.Cut(recipient, "(")
	if kind == "" {
		return "push.unknown"
	}
	return "push." + strings.ToLower(kind)
}
