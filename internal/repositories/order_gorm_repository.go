package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
)

const advanceOrderSequenceSQL = `INSERT INTO order_sequences (day, counter) VALUES (?, 1)
ON CONFLICT (day) DO UPDATE SET counter = order_sequences.counter + 1
RETURNING counter`

type GORMOrderRepository struct {
	db *gorm.DB
}

func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order together with its items.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.OrderNumber, translate(err))
	}
	return nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, translate(err))
	}
	return &order, nil
}

func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string, page Pagination) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ? AND status <> ?", userID, models.OrderStatusCancelled)
	return r.page(q, page)
}

func (r *GORMOrderRepository) ListAll(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := containsPattern(s)
		q = q.Where(`LOWER(order_number) LIKE ? ESCAPE '\' OR LOWER(shipping_full_name) LIKE ? ESCAPE '\'`, like, like)
	}
	return r.page(q, filter.Pagination)
}

func (r *GORMOrderRepository) page(q *gorm.DB, page Pagination) ([]models.Order, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page = page.Normalize()
	var orders []models.Order
	err := q.Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, trackingNumber *string) error {
	updates := map[string]interface{}{"status": to}
	if trackingNumber != nil {
		updates["tracking_number"] = *trackingNumber
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d is no longer %s: %w", id, from, ErrStale)
	}
	return nil
}

// NextOrderNumber advances the day's counter row in a single upsert. The row lock it takes
// serializes concurrent creators of the same day until their transactions end. Existing
// orders ahead of the counter (imported data, a reset sequence table) push it past them.
func (r *GORMOrderRepository) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	db := r.db.WithContext(ctx)
	day := now.UTC().Format("20060102")
	prefix := OrderNumberPrefix + day

	var counter int64
	if err := db.Raw(advanceOrderSequenceSQL, day).Scan(&counter).Error; err != nil {
		return "", fmt.Errorf("failed to advance order sequence for %s: %w", day, err)
	}

	latest, err := r.latestCounter(db, prefix)
	if err != nil {
		return "", err
	}
	if latest >= counter {
		counter = latest + 1
		err := db.Model(&models.OrderSequence{}).Where("day = ?", day).Update("counter", counter).Error
		if err != nil {
			return "", fmt.Errorf("failed to resync order sequence for %s: %w", day, err)
		}
	}

	return FormatOrderNumber(prefix, counter), nil
}

// latestCounter returns the counter of the greatest order number carrying prefix, or 0.
// Ordering by length first keeps ORD...1000 above ORD...999.
func (r *GORMOrderRepository) latestCounter(db *gorm.DB, prefix string) (int64, error) {
	var latest models.Order
	err := db.Select("order_number").
		Where("order_number LIKE ?", prefix+"%").
		Order("LENGTH(order_number) DESC, order_number DESC").
		Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find latest order number for %s: %w", prefix, err)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(latest.OrderNumber, prefix), 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// FormatOrderNumber renders prefix plus the counter padded to three digits. Counters
// above 999 keep all their digits.
func FormatOrderNumber(prefix string, counter int64) string {
	return fmt.Sprintf("%s%03d", prefix, counter)
}
