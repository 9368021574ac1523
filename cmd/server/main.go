// Command server is the application entry point. It wires together all
// layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rahulelano/events-backend/internal/auth"
	"github.com/Rahulelano/events-backend/internal/config"
	"github.com/Rahulelano/events-backend/internal/database"
	"github.com/Rahulelano/events-backend/internal/handler"
	"github.com/Rahulelano/events-backend/internal/logging"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logging.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("connected to postgres")

	if err := database.Migrate(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("failed to apply schema")
	}

	bookingRepo := repository.NewBookingRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	discountRepo := repository.NewDiscountRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	tokens, err := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialise token manager")
	}
	gate := auth.NewGate(tokens, adminRepo)

	router := handler.NewRouter(cfg.Security, handler.Handlers{
		Health:     handler.NewHealthHandler(pool),
		Bookings:   handler.NewBookingHandler(service.NewBookingService(bookingRepo)),
		Events:     handler.NewEventHandler(service.NewEventService(eventRepo)),
		Categories: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Discounts:  handler.NewDiscountHandler(service.NewDiscountService(discountRepo)),
		Admin:      handler.NewAdminHandler(service.NewAdminService(adminRepo, tokens)),
		Gate:       gate,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	logging.Info().Msg("server stopped")
}
