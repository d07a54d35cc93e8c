package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

const defaultOrderAttempts = 3

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   models.Role
}

// IsAdmin reports whether the actor may act on other users' data.
func (a Actor) IsAdmin() bool {
	return a.Role.IsStaff()
}

// OrderItemInput is one requested order line. Prices are never accepted from clients.
type OrderItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items                []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	PaymentMethod        string           `json:"paymentMethod" validate:"required,max=64"`
	ShippingFullName     string           `json:"shippingFullName" validate:"required,max=200"`
	ShippingAddressLine1 string           `json:"shippingAddressLine1" validate:"required,max=255"`
	ShippingAddressLine2 *string          `json:"shippingAddressLine2" validate:"omitempty,max=255"`
	ShippingCity         string           `json:"shippingCity" validate:"required,max=100"`
	ShippingZip          string           `json:"shippingZip" validate:"required,max=20"`
	ShippingCountry      string           `json:"shippingCountry" validate:"required,max=100"`
	ShippingPhone        string           `json:"shippingPhone" validate:"required,max=32"`
	ShippingState        string           `json:"shippingState" validate:"required,max=100"`
	CouponCode           *string          `json:"couponCode" validate:"omitempty,max=64"`
	DiscountValue        decimal.Decimal  `json:"discountValue"`
	ShippingCost         decimal.Decimal  `json:"shippingCost"`
}

func (in CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == 0 {
			return fmt.Errorf("%w: item %d has no product", ErrInvalidInput, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity for product %d must be at least 1", ErrInvalidInput, item.ProductID)
		}
	}
	required := []struct{ name, value string }{
		{"paymentMethod", in.PaymentMethod},
		{"shippingFullName", in.ShippingFullName},
		{"shippingAddressLine1", in.ShippingAddressLine1},
		{"shippingCity", in.ShippingCity},
		{"shippingZip", in.ShippingZip},
		{"shippingCountry", in.ShippingCountry},
		{"shippingPhone", in.ShippingPhone},
		{"shippingState", in.ShippingState},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}
	if in.DiscountValue.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if in.ShippingCost.IsNegative() {
		return fmt.Errorf("%w: shipping cost must not be negative", ErrInvalidInput)
	}
	return nil
}

// UpdateOrderInput is the admin patch of an order. A nil field is left unchanged.
type UpdateOrderInput struct {
	Status         *models.OrderStatus `json:"order_status"`
	TrackingNumber *string             `json:"tracking_number" validate:"omitempty,max=100"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	uow         repositories.UnitOfWork
	orders      repositories.OrderRepository
	publisher   EventPublisher
	now         func() time.Time
	maxAttempts int
}

type OrderServiceOption func(*OrderService)

// WithClock overrides the time source used for order numbers and events.
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) { s.now = now }
}

// WithMaxAttempts bounds how often order creation is retried after an order number collision.
func WithMaxAttempts(n int) OrderServiceOption {
	return func(s *OrderService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(uow repositories.UnitOfWork, orders repositories.OrderRepository, publisher EventPublisher, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		uow:         uow,
		orders:      orders,
		publisher:   publisher,
		now:         time.Now,
		maxAttempts: defaultOrderAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder turns the requested lines into a pending order priced from the current
// product rows and empties the user's cart, all in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		order *models.Order
		err   error
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		order, err = s.createOnce(ctx, userID, in)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return nil, err
		}
		slog.Warn("order number collision, retrying", "user_id", userID, "attempt", attempt, "error", err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not allocate a unique order number after %d attempts", ErrConflict, s.maxAttempts)
	}

	slog.Info("order created", "order_number", order.OrderNumber, "user_id", userID, "total", order.TotalPrice.StringFixed(2))
	publishOrderEvent(ctx, s.publisher, EventOrderCreated, order, "", s.now().UTC())
	return order, nil
}

func (s *OrderService) createOnce(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	var created *models.Order
	err := s.uow.RunInTx(ctx, func(repos repositories.Repositories) error {
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return repoErr(err, "user %s", userID)
		}
		if !user.IsActive {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}

		ids := make([]uint, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := repos.Products.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		lines := make([]PricedLine, 0, len(in.Items))
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			p, ok := byID[item.ProductID]
			if !ok || !p.IsActive {
				return fmt.Errorf("%w: product %d", ErrNotFound, item.ProductID)
			}
			lines = append(lines, PricedLine{ProductID: p.ID, UnitPrice: p.Price, Quantity: item.Quantity})
			items = append(items, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				Price:       p.Price,
			})
		}

		totals, err := ComputeTotals(lines, in.DiscountValue, in.ShippingCost)
		if err != nil {
			return err
		}

		number, err := repos.Orders.NextOrderNumber(ctx, s.now())
		if err != nil {
			return err
		}

		order := &models.Order{
			UserID:               userID,
			OrderNumber:          number,
			Subtotal:             totals.Subtotal,
			DiscountValue:        totals.Discount,
			CouponCode:           in.CouponCode,
			ShippingCost:         totals.Shipping,
			TotalPrice:           totals.Total,
			PaymentMethod:        in.PaymentMethod,
			Status:               models.OrderStatusPending,
			ShippingFullName:     in.ShippingFullName,
			ShippingAddressLine1: in.ShippingAddressLine1,
			ShippingAddressLine2: in.ShippingAddressLine2,
			ShippingCity:         in.ShippingCity,
			ShippingZip:          in.ShippingZip,
			ShippingCountry:      in.ShippingCountry,
			ShippingPhone:        in.ShippingPhone,
			ShippingState:        in.ShippingState,
			Items:                items,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			if err := repos.Products.AddSold(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := repos.Carts.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder returns an order visible to actor: its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, id uint, actor Actor) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "order %d", id)
	}
	if order.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: order %d belongs to another user", ErrForbidden, id)
	}
	return order, nil
}

// ListUserOrders returns the caller's orders, cancelled ones excluded.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, page repositories.Pagination) ([]models.Order, int64, error) {
	orders, total, err := s.orders.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, total, nil
}

// ListAllOrders is the admin listing across every user.
func (s *OrderService) ListAllOrders(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	orders, total, err := s.orders.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// CancelOrder cancels an order on behalf of its owner or an admin.
func (s *OrderService) CancelOrder(ctx context.Context, id uint, actor Actor) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case models.OrderStatusCancelled:
		return nil, fmt.Errorf("%w: order %s is already cancelled", ErrConflict, order.OrderNumber)
	case models.OrderStatusDelivered:
		return nil, fmt.Errorf("%w: order %s has been delivered", ErrConflict, order.OrderNumber)
	}
	return s.transition(ctx, order, models.OrderStatusCancelled, nil)
}

// UpdateOrder is the admin path for status and tracking changes. Status moves must follow
// the lifecycle graph; repeating the current status only updates the tracking number.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, in UpdateOrderInput, actor Actor) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only staff may update orders", ErrForbidden)
	}
	if in.Status == nil && in.TrackingNumber == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "order %d", id)
	}

	next := order.Status
	if in.Status != nil {
		next = *in.Status
	}
	if next != order.Status && !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	return s.transition(ctx, order, next, in.TrackingNumber)
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, next models.OrderStatus, tracking *string) (*models.Order, error) {
	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, order.ID, previous, next, tracking); err != nil {
		return nil, repoErr(err, "order %s", order.OrderNumber)
	}
	order.Status = next
	if tracking != nil {
		order.TrackingNumber = tracking
	}

	if next != previous {
		slog.Info("order status changed", "order_number", order.OrderNumber, "from", previous, "to", next)
		publishOrderEvent(ctx, s.publisher, EventOrderStatusChanged, order, previous, s.now().UTC())
	}
	return order, nil
}
