package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UpdateProfileInput is a partial profile update; nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// CreateUserInput is the staff-side account creation payload. Role defaults to member.
type CreateUserInput struct {
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"required,max=100"`
	Email       string      `json:"email" validate:"required,email"`
	PhoneNumber string      `json:"phone_number" validate:"omitempty,max=32"`
	Password    string      `json:"password" validate:"required,min=8,max=72"`
	Role        models.Role `json:"role" validate:"omitempty,oneof=member admin supervisor"`
}

// UpdateUserInput is a staff-side partial update of any account.
type UpdateUserInput struct {
	UpdateProfileInput
	Role     *models.Role `json:"role" validate:"omitempty,oneof=member admin supervisor"`
	IsActive *bool        `json:"is_active"`
}

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "user %s", userID)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "user %s", userID)
	}
	if err := applyProfile(user, in); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoErr(err, "user %s", userID)
	}
	return user, nil
}

// ListUsers is the staff listing of accounts, searchable by name or email.
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter) ([]models.User, int64, error) {
	for _, role := range filter.Roles {
		if !role.Valid() {
			return nil, 0, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
	}
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.GetProfile(ctx, id)
}

// CreateUser adds an active account on behalf of staff. Only admins may create staff accounts.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput, actor Actor) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if err := canManageRole(actor, role); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email '%s' already registered", ErrConflict, email)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Password:    string(hashed),
		Role:        role,
		IsActive:    true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, repoErr(err, "failed to create user %s", email)
	}
	slog.Info("user created", "user_id", user.ID, "role", role, "by", actor.UserID)
	return user, nil
}

// UpdateUser changes any account. Touching a staff account, or granting a staff role,
// needs an admin.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput, actor Actor) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "user %s", id)
	}
	if err := canManageRole(actor, user.Role); err != nil {
		return nil, err
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *in.Role)
		}
		if err := canManageRole(actor, *in.Role); err != nil {
			return nil, err
		}
		if id == actor.UserID && *in.Role != user.Role {
			return nil, fmt.Errorf("%w: cannot change your own role", ErrForbidden)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if id == actor.UserID && !*in.IsActive {
			return nil, fmt.Errorf("%w: cannot deactivate your own account", ErrForbidden)
		}
		user.IsActive = *in.IsActive
	}
	if err := applyProfile(user, in.UpdateProfileInput); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoErr(err, "user %s", id)
	}
	return user, nil
}

// DeleteUser soft-deletes an account. Staff cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id string, actor Actor) error {
	if id == actor.UserID {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return repoErr(err, "user %s", id)
	}
	if err := canManageRole(actor, user.Role); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return repoErr(err, "failed to delete user %s", id)
	}
	slog.Info("user deleted", "user_id", id, "by", actor.UserID)
	return nil
}

func canManageRole(actor Actor, role models.Role) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only staff may manage users", ErrForbidden)
	}
	if role.IsStaff() && actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins may manage staff accounts", ErrForbidden)
	}
	return nil
}

func applyProfile(user *models.User, in UpdateProfileInput) error {
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	return nil
}
