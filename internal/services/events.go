package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/models"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// EventPublisher delivers a message to a broker under routingKey.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// OrderEvent is the message body of every order event.
type OrderEvent struct {
	Event          string             `json:"event"`
	OrderID        uint               `json:"order_id"`
	OrderNumber    string             `json:"order_number"`
	UserID         string             `json:"user_id"`
	Status         models.OrderStatus `json:"status"`
	PreviousStatus models.OrderStatus `json:"previous_status,omitempty"`
	Total          string             `json:"total"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// publishOrderEvent is best effort: the order is already committed, so failures are only logged.
func publishOrderEvent(ctx context.Context, publisher EventPublisher, event string, order *models.Order, previous models.OrderStatus, now time.Time) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(OrderEvent{
		Event:          event,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.TotalPrice.StringFixed(2),
		OccurredAt:     now,
	})
	if err != nil {
		slog.Error("failed to marshal order event", "event", event, "order_id", order.ID, "error", err)
		return
	}
	if err := publisher.Publish(ctx, event, body); err != nil {
		slog.Warn("failed to publish order event", "event", event, "order_number", order.OrderNumber, "error", err)
		return
	}
	slog.Debug("published order event", "event", event, "order_number", order.OrderNumber)
}
