// Package events is the transactional outbox of the service, built on
// Watermill's PostgreSQL transport.
//
// Writers publish inside their own *sql.Tx (PublishTx), so an event row
// becomes visible to subscribers exactly when the business write commits.
// Subscribers in the same consumer group share the stream: each message is
// handled by one instance. Handlers must be idempotent; a failing handler is
// retried with exponential backoff and then Nacked for redelivery.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/ghuser/storefront/pkg/logger"
)

const (
	shutdownTimeout  = 30 * time.Second
	maxRetryInterval = 30 * time.Second
)

// Handler processes one delivered message. ctx carries the publisher's trace.
type Handler func(ctx context.Context, msg *message.Message) error

// Config tunes delivery.
type Config struct {
	// ConsumerGroup load-balances messages across instances sharing it.
	ConsumerGroup string
	MaxRetries    int
	RetryInterval time.Duration
}

// Bus publishes and consumes outbox messages stored in PostgreSQL.
// It borrows db and never closes it.
type Bus struct {
	db         *sql.DB
	publisher  message.Publisher
	subscriber message.Subscriber
	retry      middleware.Retry
	log        logger.Logger
	wg         sync.WaitGroup
}

// NewBus creates the publisher and subscriber over db. Watermill creates its
// tables on first use.
func NewBus(db *sql.DB, cfg Config, log logger.Logger) (*Bus, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}
	wlog := &slogAdapter{log: log}

	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    cfg.ConsumerGroup,
	}, wlog)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return newBus(db, pub, sub, cfg, log), nil
}

func newBus(db *sql.DB, pub message.Publisher, sub message.Subscriber, cfg Config, log logger.Logger) *Bus {
	return &Bus{
		db:         db,
		publisher:  pub,
		subscriber: sub,
		retry: middleware.Retry{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.RetryInterval,
			MaxInterval:     maxRetryInterval,
			Multiplier:      2,
			Logger:          &slogAdapter{log: log},
		},
		log: log,
	}
}

// PublishTx writes payload to topic inside tx. The message is delivered only
// if tx commits.
func (b *Bus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	// The topic table must exist already; see EnsureTopics.
	pub, err := watermillsql.NewPublisher(tx, watermillsql.PublisherConfig{
		SchemaAdapter: watermillsql.DefaultPostgreSQLSchema{},
	}, &slogAdapter{log: b.log})
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Publish writes payload to topic outside any caller transaction.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := b.publisher.Publish(topic, msg); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic until ctx is cancelled or the bus is closed.
// Errors that survive every retry are sent on the returned channel
// (buffered, 100); callers must drain it:
//
//	errCh, err := bus.Subscribe(ctx, topic, handler)
//	go func() { for err := range errCh { log.ErrorContext(ctx, "subscriber error", "error", err) } }()
func (b *Bus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)
	process := b.wrap(handler)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msg.SetContext(extractTrace(ctx, msg))
			if _, err := process(msg); err != nil {
				msg.Nack()
				select {
				case errCh <- fmt.Errorf("events: %s: %w", topic, err):
				default:
					b.log.ErrorContext(msg.Context(), "events: error channel full, dropping error",
						"error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// wrap adapts handler to Watermill's HandlerFunc with panic recovery and retry.
func (b *Bus) wrap(handler Handler) message.HandlerFunc {
	h := func(msg *message.Message) ([]*message.Message, error) {
		return nil, handler(msg.Context(), msg)
	}
	return b.retry.Middleware(middleware.Recoverer(h))
}

// EnsureTopics creates the storage behind each topic. PublishTx cannot do it
// inside the caller's transaction, so publishers call this at startup.
func (b *Bus) EnsureTopics(topics ...string) error {
	initializer, ok := b.subscriber.(message.SubscribeInitializer)
	if !ok {
		return nil
	}
	for _, topic := range topics {
		if err := initializer.SubscribeInitialize(topic); err != nil {
			return fmt.Errorf("events: initialize %s: %w", topic, err)
		}
	}
	return nil
}

// Ping checks the outbox database connection.
func (b *Bus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber, waits up to 30 s for in-flight handlers and
// closes the publisher.
func (b *Bus) Close() error {
	subErr := b.subscriber.Close()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		b.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	pubErr := b.publisher.Close()
	if err := errors.Join(subErr, pubErr); err != nil {
		return fmt.Errorf("events: close: %w", err)
	}
	return nil
}
