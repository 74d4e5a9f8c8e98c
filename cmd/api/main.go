// cmd/api is the application entry point. It wires together all layers and
// starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evently/config"
	"evently/internal/adapters/auth"
	"evently/internal/adapters/cache"
	"evently/internal/adapters/email"
	delivery "evently/internal/delivery/http"
	"evently/internal/delivery/http/controllers"
	"evently/internal/delivery/http/middleware"
	"evently/internal/domain"
	"evently/internal/repository/postgres"
	"evently/internal/services"
)

// @title Evently API
// @version 1.0
// @description Event discovery and ticketing API: events, categories, users, and orders.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gateway := postgres.NewGateway(cfg.DBUrl)
	db, err := gateway.Open(ctx)
	cancel()
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer gateway.Close()
	logger.Info("connected to postgres")

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Cache invalidation: publish stale paths over Redis when configured,
	// otherwise drop them.
	var invalidator domain.PathInvalidator
	if cfg.RedisAddr != "" {
		invalidator, err = cache.NewRedisInvalidator(cfg.RedisAddr, cfg.InvalidationChannel, logger)
		if err != nil {
			logger.Error("redis connection failed", "err", err)
			os.Exit(1)
		}
		logger.Info("connected to redis", "channel", cfg.InvalidationChannel)
	} else {
		invalidator = cache.NewNoopInvalidator()
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Services
	eventService := services.NewEventService(eventRepo, categoryRepo, userRepo, invalidator, cfg.StrictCategoryFilter, cfg.Timeout)
	categoryService := services.NewCategoryService(categoryRepo, cfg.Timeout)
	userService := services.NewUserService(userRepo, eventRepo, orderRepo, invalidator, emailService, cfg.Timeout)
	orderService := services.NewOrderService(orderRepo, eventRepo, userRepo, emailService, cfg.Timeout)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService, userService)
	categoryController := controllers.NewCategoryController(logger, categoryService)
	userController := controllers.NewUserController(logger, userService, eventService)
	orderController := controllers.NewOrderController(logger, orderService, userService, eventService)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mux := delivery.NewRouter(logger, verifier, eventController, categoryController, userController, orderController)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, middleware.Metrics(mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
