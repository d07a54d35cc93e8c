package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/kafka"
	"storefront/pkg/rabbitmq"
)

const auditConsumerGroup = "storefront-order-audit"

// Events is the configured order event transport.
type Events struct {
	// Publisher is nil when events are disabled.
	Publisher services.EventPublisher

	rabbit   *rabbitmq.Client
	kafkaPub *kafka.Publisher
	kafkaSub *kafka.Consumer
}

// OpenEvents connects the broker selected by EVENTS_DRIVER.
func OpenEvents(cfg *config.Config) (*Events, error) {
	switch cfg.EventsDriver {
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, err
		}
		return &Events{Publisher: client, rabbit: client}, nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is empty")
		}
		kcfg := kafka.Config{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic}
		pub := kafka.NewPublisher(kcfg)
		return &Events{
			Publisher: pub,
			kafkaPub:  pub,
			kafkaSub:  kafka.NewConsumer(kcfg, auditConsumerGroup),
		}, nil
	}
	return &Events{}, nil
}

// StartAudit consumes order events in the background and logs each one until ctx is done.
func (e *Events) StartAudit(ctx context.Context) error {
	switch {
	case e.rabbit != nil:
		return e.rabbit.ConsumeOrderEvents(ctx, LogOrderEvent)
	case e.kafkaSub != nil:
		go e.kafkaSub.Run(ctx, LogOrderEvent)
	}
	return nil
}

func (e *Events) Close() error {
	var errs []error
	if e.rabbit != nil {
		errs = append(errs, e.rabbit.Close())
	}
	if e.kafkaPub != nil {
		errs = append(errs, e.kafkaPub.Close())
	}
	if e.kafkaSub != nil {
		errs = append(errs, e.kafkaSub.Close())
	}
	return errors.Join(errs...)
}

// LogOrderEvent writes an audit log line for one order event message.
func LogOrderEvent(_ context.Context, body []byte) error {
	var event services.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed order event: %w", err)
	}
	if event.Event == "" || event.OrderNumber == "" {
		return fmt.Errorf("order event is missing event or order_number: %s", body)
	}
	slog.Info("order event",
		"event", event.Event,
		"order_number", event.OrderNumber,
		"user_id", event.UserID,
		"status", event.Status,
		"previous_status", event.PreviousStatus,
		"total", event.Total,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
