package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/metrics"
)

// Publisher sends events to RabbitMQ.  Each publish opens its own
// connection; refresh runs are rare.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishScheduleUpdated publishes ev to the schedule.updated queue as a
// persistent JSON message.
func (p *Publisher) PublishScheduleUpdated(ctx context.Context, ev ScheduleUpdatedEvent) error {
	err := p.publish(ctx, ScheduleUpdatedQueue, ev)
	if err != nil {
		metrics.QueueEvents.WithLabelValues("out", "error").Inc()
		log.Error().Err(err).Str("run_id", ev.RunID).Msg("publish schedule.updated failed")
		return err
	}
	metrics.QueueEvents.WithLabelValues("out", "ok").Inc()
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch, queue); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// declare makes sure the durable queue exists.  Both sides call it so
// either may start first.
func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return nil
}
