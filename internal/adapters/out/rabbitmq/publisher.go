// Package rabbitmq publishes domain events to a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"brillante/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue receives events when no queue name is configured.
const DefaultQueue = "production.events"

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("rabbitmq publisher is closed")

// Publisher implements ports.EventPublisher over a single AMQP connection. The channel is
// reopened on the next Publish after a broker failure.
type Publisher struct {
	url    string
	queue  string
	logger *slog.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewPublisher dials the broker and declares the queue. Messages go through the default
// exchange with the queue name as routing key.
func NewPublisher(url, queue string, logger *slog.Logger) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Publisher{
		url:    url,
		queue:  queue,
		logger: logger.With("component", "rabbitmq-publisher", "queue", queue),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// Publish sends the event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if p.ch == nil || p.ch.IsClosed() {
		if err = p.connect(); err != nil {
			return err
		}
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    optionalID(event.ID),
			Type:         event.Name,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.WarnContext(ctx, "Publish failed, channel will be reopened", "event", event.Name, "error", err)
		p.reset()
		return err
	}
	return nil
}

// Close shuts the channel and the connection down.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return p.reset()
}

func (p *Publisher) connect() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("rabbitmq dial: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err = ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.ch = ch
	return nil
}

func (p *Publisher) reset() error {
	var errList []error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errList = append(errList, err)
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errList = append(errList, err)
		}
		p.conn = nil
	}
	return errors.Join(errList...)
}
