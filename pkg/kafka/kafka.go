package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// EventHeader carries the routing key of a message.
const EventHeader = "event"

type Config struct {
	Brokers []string
	Topic   string
}

// Publisher writes order events to a single topic.
type Publisher struct {
	writer *kafkago.Writer
}

func NewPublisher(cfg Config) *Publisher {
	return &Publisher{writer: &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireOne, // Only leader acknowledgment needed
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

// Publish writes body keyed by its order number, so events of one order stay on one
// partition in order. The routing key travels as a header.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	msg := kafkago.Message{
		Key:     messageKey(routingKey, body),
		Value:   body,
		Time:    time.Now().UTC(),
		Headers: []kafkago.Header{{Key: EventHeader, Value: []byte(routingKey)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s to kafka: %w", routingKey, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func messageKey(routingKey string, body []byte) []byte {
	var keyed struct {
		OrderNumber string `json:"order_number"`
	}
	if err := json.Unmarshal(body, &keyed); err == nil && keyed.OrderNumber != "" {
		return []byte(keyed.OrderNumber)
	}
	return []byte(routingKey)
}

// Consumer reads the order event topic as part of a consumer group.
type Consumer struct {
	reader *kafkago.Reader
}

func NewConsumer(cfg Config, groupID string) *Consumer {
	return &Consumer{reader: kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: groupID,
	})}
}

// Run calls handler for each message and blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, handler func(ctx context.Context, body []byte) error) {
	topic := c.reader.Config().Topic
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("consumer shutting down", "topic", topic)
				return
			}
			slog.Error("error reading message", "topic", topic, "error", err)
			continue
		}
		if err := handler(ctx, msg.Value); err != nil {
			slog.Error("error handling message", "topic", topic, "offset", msg.Offset, "error", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
