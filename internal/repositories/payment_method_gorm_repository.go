package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type GORMPaymentMethodRepository struct {
	db *gorm.DB
}

func NewGORMPaymentMethodRepository(db *gorm.DB) *GORMPaymentMethodRepository {
	return &GORMPaymentMethodRepository{db: db}
}

func (r *GORMPaymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, id ASC").Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods for user %s: %w", userID, err)
	}
	return methods, nil
}

func (r *GORMPaymentMethodRepository) GetByID(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment method %d: %w", id, translate(err))
	}
	return &method, nil
}

func (r *GORMPaymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := clearDefaultPaymentMethod(tx, method.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(method).Error; err != nil {
			return fmt.Errorf("failed to create payment method: %w", translate(err))
		}
		return nil
	})
}

func (r *GORMPaymentMethodRepository) Update(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := clearDefaultPaymentMethod(tx, method.UserID); err != nil {
				return err
			}
		}
		res := tx.Model(method).Select("*").Omit("ID", "UserID", "CreatedAt").Updates(method)
		if res.Error != nil {
			return fmt.Errorf("failed to update payment method %d: %w", method.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("payment method %d not found for update: %w", method.ID, ErrNotFound)
		}
		return nil
	})
}

func (r *GORMPaymentMethodRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PaymentMethod{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete payment method %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment method %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

func clearDefaultPaymentMethod(tx *gorm.DB, userID string) error {
	err := tx.Model(&models.PaymentMethod{}).Where("user_id = ? AND is_default = ?", userID, true).Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default payment method for user %s: %w", userID, err)
	}
	return nil
}
