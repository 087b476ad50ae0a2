package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davrk/go-storefront/app/cmd"
	"github.com/davrk/go-storefront/app/configs"
	"github.com/davrk/go-storefront/app/models/migrations"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/repositories/memory"
	"github.com/davrk/go-storefront/app/routes"
	"github.com/davrk/go-storefront/app/services"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	env := configs.LoadEnv()

	if env.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}

	store, err := buildStore(env, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	authSvc := services.NewAuthService(env.JWTSecret, logger)
	paymentSvc := services.NewPaymentService(env.PaymentDelay, logger)
	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	router := routes.NewRouter(routes.Deps{
		Store:       store,
		AuthSvc:     authSvc,
		CartSvc:     services.NewCartService(store, logger),
		CheckoutSvc: services.NewCheckoutService(store, paymentSvc, mailer, logger),
		ReviewSvc:   services.NewReviewService(store, logger),
		ReportSvc:   services.NewReportService(store),
		PaymentSvc:  paymentSvc,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         ":" + env.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("storage", env.StorageDriver).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func buildStore(env configs.ENV, logger zerolog.Logger) (repositories.Store, error) {
	if env.StorageDriver == "memory" {
		logger.Warn().Msg("using in-memory storage; data will not survive a restart")
		return memory.NewStore(), nil
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return nil, err
	}
	return repositories.NewGormStore(db), nil
}
