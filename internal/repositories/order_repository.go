package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
)

// OrderNumberPrefix starts every order number, followed by the UTC date and a daily counter.
const OrderNumberPrefix = "ORD"

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Pagination
	Search string
	Status models.OrderStatus
}

// OrderRepository defines the interface for order data access.
// Order items are written only through Create; there is no update path for them.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// ListByUser returns the user's orders that are not cancelled, newest first.
	ListByUser(ctx context.Context, userID string, page Pagination) ([]models.Order, int64, error)
	ListAll(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	// UpdateStatus moves the order from status from to status to, optionally setting the
	// tracking number. It fails with ErrStale if the order is no longer in status from.
	UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, trackingNumber *string) error
	// NextOrderNumber reserves the next order number for the UTC day of now.
	// It must run on a transaction handle so the reservation is released on rollback.
	NextOrderNumber(ctx context.Context, now time.Time) (string, error)
}
