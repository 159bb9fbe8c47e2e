package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/noguchitomoya/Google-meet/internal/config"
	"github.com/noguchitomoya/Google-meet/internal/database"
	"github.com/noguchitomoya/Google-meet/internal/logger"
	"github.com/noguchitomoya/Google-meet/internal/mail"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/noguchitomoya/Google-meet/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLogger := logger.New(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DATABASE_URL is required")
	}
	pool, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// 3. Meeting provider and mail sender are chosen once here
	meetings, kind, err := meeting.New(ctx, cfg.Meeting(), appLogger)
	if err != nil {
		log.Fatalf("Failed to create meeting provider: %v", err)
	}
	appLogger.Info("meeting provider selected", "kind", kind)

	mailer, err := mail.NewSender(cfg.SMTP(), appLogger)
	if err != nil {
		log.Fatalf("Failed to create mail sender: %v", err)
	}

	// 4. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, pool, meetings, mailer, appLogger); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		<-ctx.Done()
		appLogger.Info("shutting down server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			appLogger.Error("server shutdown", "error", err)
		}
	}()

	// 5. Start Server
	appLogger.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
