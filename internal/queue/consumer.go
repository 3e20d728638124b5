package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/metrics"
)

// Handler processes one schedule.updated event.
type Handler func(ctx context.Context, ev ScheduleUpdatedEvent) error

// Consumer reads schedule.updated events and hands them to a Handler.
type Consumer struct {
	url    string
	handle Handler

	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewConsumer returns a consumer for the broker at url.
func NewConsumer(url string, h Handler) *Consumer {
	return &Consumer{url: url, handle: h, minBackoff: time.Second, maxBackoff: 30 * time.Second}
}

// Run connects, consumes and reconnects with exponential backoff until
// ctx is cancelled.  It returns ctx.Err().
func (c *Consumer) Run(ctx context.Context) error {
	backoff := c.minBackoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("schedule consumer: dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = c.minBackoff

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("schedule consumer: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(1, 0, false); err != nil {
		log.Warn().Err(err).Msg("schedule consumer: set QoS failed")
	}
	if err := declare(ch, ScheduleUpdatedQueue); err != nil {
		return err
	}
	msgs, err := ch.Consume(ScheduleUpdatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	log.Info().Str("queue", ScheduleUpdatedQueue).Msg("schedule consumer: listening")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.process(ctx, d.Body); err != nil {
				log.Error().Err(err).Msg("schedule consumer: handle message failed")
				// reject without requeue so a poison message cannot spin
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// process decodes one message body and runs the handler.
func (c *Consumer) process(ctx context.Context, body []byte) error {
	var ev ScheduleUpdatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		metrics.QueueEvents.WithLabelValues("in", "invalid").Inc()
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := c.handle(ctx, ev); err != nil {
		metrics.QueueEvents.WithLabelValues("in", "error").Inc()
		return err
	}
	metrics.QueueEvents.WithLabelValues("in", "ok").Inc()
	log.Info().
		Str("run_id", ev.RunID).
		Strs("changed_days", ev.ChangedDays).
		Bool("films_changed", ev.FilmsChanged).
		Msg("schedule update applied")
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
