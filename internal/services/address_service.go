package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type AddressInput struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	AddressLine string `json:"address_line" validate:"required,max=255"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	ZipCode     string `json:"zip_code" validate:"required,max=20"`
	Country     string `json:"country" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	IsDefault   bool   `json:"is_default"`
}

type AddressService struct {
	repo repositories.AddressRepository
}

func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Get returns an address owned by userID.
func (s *AddressService) Get(ctx context.Context, userID string, id uint) (*models.Address, error) {
	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "address %d", id)
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("%w: address %d belongs to another user", ErrForbidden, id)
	}
	return address, nil
}

func (s *AddressService) Create(ctx context.Context, userID string, in AddressInput) (*models.Address, error) {
	address := &models.Address{UserID: userID}
	applyAddress(address, in)
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, repoErr(err, "failed to create address")
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, userID string, id uint, in AddressInput) (*models.Address, error) {
	address, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyAddress(address, in)
	if err := s.repo.Update(ctx, address); err != nil {
		return nil, repoErr(err, "failed to update address %d", id)
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err, "failed to delete address %d", id)
	}
	return nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID string, id uint) (*models.Address, error) {
	address, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetDefault(ctx, userID, id); err != nil {
		return nil, repoErr(err, "failed to set default address %d", id)
	}
	address.IsDefault = true
	return address, nil
}

func applyAddress(a *models.Address, in AddressInput) {
	a.FullName = in.FullName
	a.AddressLine = in.AddressLine
	a.City = in.City
	a.State = in.State
	a.ZipCode = in.ZipCode
	a.Country = in.Country
	a.PhoneNumber = in.PhoneNumber
	a.IsDefault = in.IsDefault
}
