package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"account-service/internal/api"
	"account-service/internal/config"
	"account-service/internal/events"
	"account-service/internal/jwt"
	"account-service/internal/repository"
	"account-service/internal/s3"
	"account-service/internal/service"
	"account-service/internal/tracing"
	_ "account-service/migrations"
)

const serviceName = "account-service"

func main() {
	cfg, err := config.Load(".env.dev")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalHandler(os.Stdout, serviceName, cfg.LogLevel())

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	if cfg.Otel.Enabled {
		shutdownTracer, err := tracing.InitTracerProvider(serviceName, cfg.AppEnv, cfg.Otel.Endpoint)
		if err != nil {
			log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Error shutting down tracer provider", "error", err)
			}
		}()
	}

	db := connectDB(cfg)
	defer db.Close()

	var publisher events.EventPublisher = events.NoopPublisher{}
	var natsPublisher *events.NatsPublisher
	if cfg.NatsURL != "" {
		natsPublisher, err = events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			slog.Warn("Failed to connect to NATS, user events disabled", "error", err)
		} else {
			publisher = natsPublisher
			slog.Info("Successfully connected to NATS.")
		}
	}

	userRepo := repository.NewPostgresUserRepository(db)
	userService, err := service.NewUserService(userRepo, publisher)
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	devMode := cfg.IsDevelopment()

	authHandler := api.NewAuthHandler(userService, tokens, devMode)
	userHandler := api.NewUserHandler(userService, devMode)

	if cfg.S3.Enabled() {
		filePresigner, err := s3.NewFilePresigner(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 presigner: %v", err)
		}
		userHandler.WithAvatarUploads(filePresigner, s3.AvatarObjectKey)
		slog.Info("Successfully initialized S3 presigner.", "bucket", cfg.S3.BucketName)
	}

	app := api.NewApp(serviceName, devMode)
	api.SetupRoutes(app, authHandler, userHandler, tokens)

	go func() {
		slog.Info("Listening", "service", serviceName, "port", cfg.AppPort)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		slog.Error("Error during shutdown", "error", err)
	}

	userService.Wait()
	if natsPublisher != nil {
		natsPublisher.Close()
	}
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DB.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	slog.Info("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DB.URL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	slog.Info("Migrations applied successfully!")
}
