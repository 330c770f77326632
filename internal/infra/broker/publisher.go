package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"school-reservations/internal/pkg/config"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends reservation events to a durable queue as persistent JSON
// messages. amqp channels are not safe for concurrent publishing, hence mu.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	ch      channel
	queue   string
	timeout time.Duration
}

// NewPublisher dials the broker and declares the queue. An empty URL disables
// publishing and yields a no-op publisher.
func NewPublisher(cfg config.AMQPConfig) (shared.EventPublisher, func(), error) {
	if cfg.URL == "" {
		return NoopPublisher{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open channel")
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare queue")
	}

	p := &Publisher{conn: conn, ch: ch, queue: cfg.Queue, timeout: cfg.PublishTimeout}
	return p, p.close, nil
}

func newPublisherWithChannel(ch channel, queue string, timeout time.Duration) *Publisher {
	return &Publisher{ch: ch, queue: queue, timeout: timeout}
}

func (p *Publisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt.UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}

func (p *Publisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		slog.Warn("failed to close amqp channel", "error", err.Error())
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			slog.Warn("failed to close amqp connection", "error", err.Error())
		}
	}
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event shared.ReservationEvent) error {
	slog.Debug("event publishing disabled", "type", string(event.Type))
	return nil
}
