package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/guttosm/orderpulse/config"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/guttosm/orderpulse/internal/metrics"
)

const (
	fetchRetryDelay = time.Second
	storeRetryDelay = 500 * time.Millisecond
	maxRetryDelay   = 30 * time.Second
	// foreign_key_violation: the order names a restaurant that does not exist
	pqForeignKeyViolation = "23503"
)

// Reader is the part of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderStore persists imported orders.
type OrderStore interface {
	InsertOrder(ctx context.Context, o models.Order) (int64, error)
}

// Consumer imports orders from a Kafka topic.
//
// Messages are committed only after they were handled: stored, or rejected as
// invalid. A storage failure is retried with backoff on the same message; the
// consumer never fetches past a message it could not handle.
type Consumer struct {
	reader     Reader
	store      OrderStore
	validate   *validator.Validate
	metrics    *metrics.Registry
	log        zerolog.Logger
	retryDelay time.Duration
}

// NewReader builds a consumer-group reader from configuration.
func NewReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
}

// NewConsumer wires a reader to a store. reg may be nil.
func NewConsumer(reader Reader, store OrderStore, reg *metrics.Registry) *Consumer {
	return &Consumer{
		reader:     reader,
		store:      store,
		validate:   validator.New(),
		metrics:    reg,
		log:        logger.WithComponent("stream"),
		retryDelay: storeRetryDelay,
	}
}

// Run reads messages until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Msg("order consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.log.Info().Msg("order consumer stopped")
				return nil
			}
			if errors.Is(err, io.EOF) {
				c.log.Info().Msg("kafka reader closed")
				return nil
			}
			c.log.Error().Err(err).Msg("fetch message failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		if err := c.handleWithRetry(ctx, msg); err != nil {
			c.log.Info().Int("partition", msg.Partition).Int64("offset", msg.Offset).Msg("order consumer stopped before the message was stored")
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("commit failed")
		}
	}
}

// handleWithRetry handles msg until it succeeds, backing off between attempts.
// It returns an error only when ctx is done first.
func (c *Consumer) handleWithRetry(ctx context.Context, msg kafka.Message) error {
	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := c.handleMessage(ctx, msg)
		if err == nil {
			return nil
		}
		c.log.Error().Err(err).
			Int("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("order not stored, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}

// handleMessage returns an error only when the message should be retried.
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	order, err := decodeOrder(c.validate, msg.Value)
	if err != nil {
		c.reject(msg, err)
		return nil
	}

	id, err := c.store.InsertOrder(ctx, order)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			c.reject(msg, err)
			return nil
		}
		return err
	}

	if c.metrics != nil {
		c.metrics.OrdersImported.Inc()
	}
	c.log.Debug().Int64("order_id", id).Int64("restaurant_id", order.RestaurantID).Msg("order imported")
	return nil
}

func (c *Consumer) reject(msg kafka.Message, err error) {
	if c.metrics != nil {
		c.metrics.OrdersRejected.Inc()
	}
	c.log.Warn().Err(err).Int("partition", msg.Partition).Int64("offset", msg.Offset).Msg("invalid order message, skipping")
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	c.log.Info().Msg("closing order consumer")
	return c.reader.Close()
}
