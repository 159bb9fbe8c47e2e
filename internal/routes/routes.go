package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/noguchitomoya/Google-meet/internal/config"
	"github.com/noguchitomoya/Google-meet/internal/handlers"
	"github.com/noguchitomoya/Google-meet/internal/mail"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/noguchitomoya/Google-meet/internal/middleware"
	"github.com/noguchitomoya/Google-meet/internal/repository"
	"github.com/noguchitomoya/Google-meet/internal/services"
)

func RegisterRoutes(
	app *fiber.App,
	cfg *config.Config,
	db *pgxpool.Pool,
	meetings meeting.Provider,
	mailer mail.Sender,
	logger *slog.Logger,
) error {
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiresIn)
	studentService := services.NewStudentService(studentRepo)
	sessionService := services.NewSessionService(
		studentService,
		sessionRepo,
		emailLogRepo,
		meetings,
		mailer,
		cfg.MeetingTimeout,
		logger,
	)

	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(studentService)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	authRequired := middleware.AuthRequired(authService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)

	authProtected := api.Group("/v1", authRequired)

	students := authProtected.Group("/students")
	students.Get("", studentHandler.ListStudents)
	students.Post("", studentHandler.CreateStudent)

	sessions := authProtected.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Get("", sessionHandler.ListSessions)

	return nil
}
