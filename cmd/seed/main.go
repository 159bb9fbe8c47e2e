package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/noguchitomoya/Google-meet/internal/config"
	"github.com/noguchitomoya/Google-meet/internal/database"
	"github.com/noguchitomoya/Google-meet/internal/logger"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/repository"
	"github.com/noguchitomoya/Google-meet/pkg/utils"
)

type coachSeeder interface {
	GetByEmployeeNumber(ctx context.Context, employeeNumber string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type defaultCoach struct {
	EmployeeNumber string
	Name           string
	Email          string
	Password       string
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLogger := logger.New(cfg.AppEnv, cfg.LogLevel)

	if cfg.DBUrl == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	created, err := seedDefaultCoach(ctx, repository.NewUserRepository(pool), defaultCoach{
		EmployeeNumber: cfg.DefaultCoachEmployeeNumber,
		Name:           cfg.DefaultCoachName,
		Email:          cfg.DefaultCoachEmail,
		Password:       cfg.DefaultCoachPassword,
	}, appLogger)
	if err != nil {
		log.Fatalf("Failed to seed default coach: %v", err)
	}
	if !created {
		appLogger.Info("default coach already exists", "employee_number", cfg.DefaultCoachEmployeeNumber)
	}
}

// seedDefaultCoach creates the coach unless one with the same employee
// number exists. It reports whether a row was inserted.
func seedDefaultCoach(ctx context.Context, users coachSeeder, coach defaultCoach, logger *slog.Logger) (bool, error) {
	employeeNumber := strings.TrimSpace(coach.EmployeeNumber)
	if employeeNumber == "" {
		return false, errors.New("employee number is required")
	}

	if _, err := users.GetByEmployeeNumber(ctx, employeeNumber); err == nil {
		return false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("lookup coach: %w", err)
	}

	if len(coach.Password) < 8 {
		return false, errors.New("DEFAULT_COACH_PASSWORD must be at least 8 characters")
	}
	hash, err := utils.HashPassword(coach.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		EmployeeNumber: employeeNumber,
		Name:           strings.TrimSpace(coach.Name),
		Email:          strings.ToLower(strings.TrimSpace(coach.Email)),
		Role:           models.RoleCoach,
		Status:         models.UserStatusActive,
		PasswordHash:   hash,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return false, fmt.Errorf("create coach: %w", err)
	}

	logger.Info("default coach created", "employee_number", user.EmployeeNumber, "id", user.ID)
	return true, nil
}
