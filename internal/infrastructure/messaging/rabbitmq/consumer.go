package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/evently/event-actions-service/internal/metrics"
)

// LifecycleMessage is the envelope published by the event and booking
// services when something that affects a snapshot changes.
type LifecycleMessage struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	TraceID   string    `json:"trace_id"`
}

// Invalidator drops cached state for an event.
type Invalidator interface {
	InvalidateEvent(ctx context.Context, eventID string) error
}

// routing keys that invalidate the cached event core
var invalidationKeys = []string{
	"event.updated",
	"event.canceled",
	"booking.created",
	"booking.canceled",
}

const (
	queueName      = "actions-service.lifecycle"
	retryQueueName = "actions-service.lifecycle.retry"
	dlxName        = "actions.dlx"
	dlqName        = "actions-service.lifecycle.dlq"
	maxRetries     = 3
)

// Consumer listens for lifecycle messages and invalidates cached
// snapshots so the next evaluation sees fresh state.
type Consumer struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	queue       string
	invalidator Invalidator
	exchange    string
}

func NewConsumer(rabbitURL, exchange string, inv Invalidator) (*Consumer, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Main exchange (topic)
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// DLX (fanout) and DLQ
	if err := ch.ExchangeDeclare(dlxName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare dlx: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare dlq: %w", err)
	}
	if err := ch.QueueBind(dlqName, "", dlxName, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind dlq: %w", err)
	}

	// Main queue: rejected deliveries go to the DLX
	mainQArgs := amqp.Table{"x-dead-letter-exchange": dlxName}
	q, err := ch.QueueDeclare(queueName, true, false, false, false, mainQArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	// Retry queue: TTL back to the main queue
	retryQArgs := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queueName,
		"x-message-ttl":             5000,
	}
	if _, err := ch.QueueDeclare(retryQueueName, true, false, false, false, retryQArgs); err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	for _, key := range invalidationKeys {
		if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}

	return &Consumer{
		conn:        conn,
		channel:     ch,
		queue:       q.Name,
		invalidator: inv,
		exchange:    exchange,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) {
	go c.consume(ctx)
	log.Info().
		Str("queue", c.queue).
		Str("exchange", c.exchange).
		Msg("lifecycle consumer started")
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Consumer) consume(ctx context.Context) {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to start consuming")
		return
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("consumer shutting down")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("consumer channel closed")
				return
			}
			c.handleMessage(msg)
		}
	}
}

func (c *Consumer) handleMessage(msg amqp.Delivery) {
	routingKey := msg.RoutingKey
	if val, ok := msg.Headers["x-original-routing-key"].(string); ok {
		routingKey = val
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := ProcessDelivery(ctx, c.invalidator, routingKey, msg.Body)
	switch err {
	case nil:
		metrics.RecordMessage(routingKey, "ok")
		msg.Ack(false)
		return
	case errPoison:
		metrics.RecordMessage(routingKey, "poison")
		msg.Nack(false, false) // -> DLQ
		return
	case errIgnored:
		metrics.RecordMessage(routingKey, "ignored")
		msg.Ack(false)
		return
	}

	retryCount := 0
	if val, ok := msg.Headers["x-retry-count"].(int32); ok {
		retryCount = int(val)
	}
	if retryCount < maxRetries {
		log.Warn().Err(err).
			Int("retry_count", retryCount).
			Str("routing_key", routingKey).
			Msg("invalidation failed, scheduling retry")

		headers := make(amqp.Table)
		for k, v := range msg.Headers {
			headers[k] = v
		}
		headers["x-retry-count"] = int32(retryCount + 1)
		headers["x-original-routing-key"] = routingKey

		pubErr := c.channel.Publish("", retryQueueName, false, false, amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
			MessageId:   msg.MessageId,
		})
		if pubErr != nil {
			log.Error().Err(pubErr).Msg("failed to publish to retry queue")
			metrics.RecordMessage(routingKey, "dlq")
			msg.Nack(false, false)
			return
		}
		metrics.RecordMessage(routingKey, "retry")
		msg.Ack(false)
		return
	}

	log.Error().Err(err).Str("routing_key", routingKey).Msg("max retries reached, sending to DLQ")
	metrics.RecordMessage(routingKey, "dlq")
	msg.Nack(false, false)
}

var (
	errPoison  = fmt.Errorf("poison message")
	errIgnored = fmt.Errorf("ignored routing key")
)

// ProcessDelivery decodes one delivery and applies the invalidation.
// It returns errPoison for undecodable payloads, errIgnored for
// routing keys this service does not care about, and any other error
// for transient failures worth retrying.
func ProcessDelivery(ctx context.Context, inv Invalidator, routingKey string, body []byte) error {
	if !isInvalidationKey(routingKey) {
		log.Warn().Str("routing_key", routingKey).Msg("unknown routing key")
		return errIgnored
	}

	var m LifecycleMessage
	if err := json.Unmarshal(body, &m); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal lifecycle message")
		return errPoison
	}
	if _, err := uuid.Parse(m.EventID); err != nil {
		log.Error().Str("event_id", m.EventID).Msg("invalid event_id")
		return errPoison
	}

	if err := inv.InvalidateEvent(ctx, m.EventID); err != nil {
		return err
	}

	log.Debug().
		Str("routing_key", routingKey).
		Str("event_id", m.EventID).
		Str("trace_id", m.TraceID).
		Msg("snapshot invalidated")
	return nil
}

func isInvalidationKey(key string) bool {
	for _, k := range invalidationKeys {
		if k == key {
			return true
		}
	}
	return false
}
