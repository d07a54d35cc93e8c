package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// PaymentMethodInput carries the full card number for validation only; it is never stored.
type PaymentMethodInput struct {
	CardholderName string `json:"cardholder_name" validate:"required,max=200"`
	CardNumber     string `json:"card_number" validate:"required,len=16,numeric"`
	ExpiryDate     string `json:"expiry_date" validate:"required,mmyy"`
	IsDefault      bool   `json:"is_default"`
}

type PaymentMethodService struct {
	repo repositories.PaymentMethodRepository
}

func NewPaymentMethodService(repo repositories.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{repo: repo}
}

func (s *PaymentMethodService) List(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	methods, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (s *PaymentMethodService) Get(ctx context.Context, userID string, id uint) (*models.PaymentMethod, error) {
	method, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "payment method %d", id)
	}
	if method.UserID != userID {
		return nil, fmt.Errorf("%w: payment method %d belongs to another user", ErrForbidden, id)
	}
	return method, nil
}

func (s *PaymentMethodService) Create(ctx context.Context, userID string, in PaymentMethodInput) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{UserID: userID}
	if err := applyPaymentMethod(method, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, method); err != nil {
		return nil, repoErr(err, "failed to create payment method")
	}
	return method, nil
}

func (s *PaymentMethodService) Update(ctx context.Context, userID string, id uint, in PaymentMethodInput) (*models.PaymentMethod, error) {
	method, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyPaymentMethod(method, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, method); err != nil {
		return nil, repoErr(err, "failed to update payment method %d", id)
	}
	return method, nil
}

func (s *PaymentMethodService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err, "failed to delete payment method %d", id)
	}
	return nil
}

func applyPaymentMethod(m *models.PaymentMethod, in PaymentMethodInput) error {
	if len(in.CardNumber) != 16 {
		return fmt.Errorf("%w: card number must have 16 digits", ErrInvalidInput)
	}
	for _, r := range in.CardNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: card number must be numeric", ErrInvalidInput)
		}
	}
	m.CardholderName = in.CardholderName
	m.CardLast4 = in.CardNumber[12:]
	m.ExpiryDate = in.ExpiryDate
	m.IsDefault = in.IsDefault
	return nil
}
