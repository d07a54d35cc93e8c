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

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Realm selects which accounts a login endpoint accepts.
type Realm int

const (
	RealmMember Realm = iota
	RealmAdmin
)

func (r Realm) allows(role models.Role) bool {
	if r == RealmAdmin {
		return role.IsStaff()
	}
	return role == models.RoleMember
}

// RegisterInput is the self-service member sign-up payload.
type RegisterInput struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		now:        time.Now,
	}
}

// TokenTTL is how long issued tokens stay valid.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenDurat
}

// RegisterUser creates an active member account with a bcrypt-hashed password.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email '%s' already registered", ErrConflict, email)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Password:    string(hashedPassword),
		Role:        models.RoleMember,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, repoErr(err, "failed to register user")
	}
	return user, nil
}

// LoginUser authenticates a user for realm and returns a signed JWT.
func (s *AuthService) LoginUser(ctx context.Context, email, password string, realm Realm) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			slog.Error("login lookup failed", "error", err)
		}
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: account is disabled", ErrUnauthorized)
	}
	if !realm.allows(user.Role) {
		return "", nil, fmt.Errorf("%w: account cannot sign in here", ErrUnauthorized)
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now.UTC()); err != nil {
		slog.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}
	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
}

// ActorFromClaims reads the caller identity out of validated claims.
func ActorFromClaims(claims jwt.MapClaims) (Actor, error) {
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return Actor{}, fmt.Errorf("%w: token is missing identity claims", ErrUnauthorized)
	}
	return Actor{UserID: userID, Role: models.Role(role)}, nil
}
