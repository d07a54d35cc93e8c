package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type GORMAddressRepository struct {
	db *gorm.DB
}

func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

func (r *GORMAddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, id ASC").Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

func (r *GORMAddressRepository) GetByID(ctx context.Context, id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get address %d: %w", id, translate(err))
	}
	return &address, nil
}

// Create inserts the address. A default address clears the user's previous default.
func (r *GORMAddressRepository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaultAddress(tx, address.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", translate(err))
		}
		return nil
	})
}

func (r *GORMAddressRepository) Update(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaultAddress(tx, address.UserID); err != nil {
				return err
			}
		}
		res := tx.Model(address).Select("*").Omit("ID", "UserID", "CreatedAt").Updates(address)
		if res.Error != nil {
			return fmt.Errorf("failed to update address %d: %w", address.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("address %d not found for update: %w", address.ID, ErrNotFound)
		}
		return nil
	})
}

func (r *GORMAddressRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMAddressRepository) SetDefault(ctx context.Context, userID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefaultAddress(tx, userID); err != nil {
			return err
		}
		res := tx.Model(&models.Address{}).Where("id = ? AND user_id = ?", id, userID).Update("is_default", true)
		if res.Error != nil {
			return fmt.Errorf("failed to set default address %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("address %d not found for user %s: %w", id, userID, ErrNotFound)
		}
		return nil
	})
}

func clearDefaultAddress(tx *gorm.DB, userID string) error {
	err := tx.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default address for user %s: %w", userID, err)
	}
	return nil
}
