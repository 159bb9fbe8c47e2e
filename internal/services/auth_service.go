package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/repository"
	"github.com/noguchitomoya/Google-meet/pkg/utils"
)

// ErrUserNotFound is returned when a token refers to a user that no longer
// exists or has been deactivated.
var ErrUserNotFound = errors.New("user not found")

type userStore interface {
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthService struct {
	userRepo  userStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login authenticates a coach by employee number. Unknown numbers, wrong
// passwords and inactive accounts all fail with ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, employeeNumber, password string) (*LoginResult, error) {
	employeeNumber = strings.TrimSpace(employeeNumber)
	if employeeNumber == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive() || !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrUserNotFound
	}
	return user, nil
}
