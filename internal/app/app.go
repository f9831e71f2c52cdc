// Package app assembles the Paycal API from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/paycal/backend/internal/api/handlers"
	"github.com/paycal/backend/internal/api/router"
	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/validator"
	"github.com/paycal/backend/internal/repository/sqlstore"
	"github.com/paycal/backend/internal/services"
	"github.com/paycal/backend/internal/worker"
)

// App is a configured API server with its background jobs
type App struct {
	cfg    *config.Config
	db     db.DB
	server *http.Server
	roller *worker.BillingRoller
	logger *logger.Logger
}

// New opens the store, applies migrations when enabled and wires the server.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	d, err := db.Open(ctx, db.Config{
		URL:             cfg.Database.URL,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.MigrateUp(d); err != nil {
			_ = d.Close()
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	clk := clock.System()
	a := &App{
		cfg:    cfg,
		db:     d,
		logger: log,
		server: &http.Server{
			Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:      Handler(cfg, d, clk, log),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	if cfg.Jobs.Enabled {
		a.roller = worker.NewBillingRoller(sqlstore.NewSubscriptionRepository(d), clk, cfg.Jobs.BillingRollSchedule, log)
	}
	return a, nil
}

// Handler builds the full HTTP handler over an open store.
func Handler(cfg *config.Config, d db.DB, clk clock.Clock, log *logger.Logger) http.Handler {
	tx := db.NewTransactor(d)
	val := validator.New()

	userRepo := sqlstore.NewUserRepository(d)
	subRepo := sqlstore.NewSubscriptionRepository(d)
	activityRepo := sqlstore.NewActivityRepository(d)
	friendRepo := sqlstore.NewFriendRepository(d)
	profileRepo := sqlstore.NewProfileRepository(d)

	freeLimit := cfg.Limits.FreeSubscriptions
	rates := analytics.FixedRates{USD: cfg.Rates.USD, EUR: cfg.Rates.EUR}

	userSvc := services.NewUserService(userRepo, cfg.Auth, clk, log)
	subSvc := services.NewSubscriptionService(subRepo, userRepo, activityRepo, tx, clk, freeLimit, log)
	analyticsSvc := services.NewAnalyticsService(subRepo, rates, clk)
	premiumSvc := services.NewPremiumService(userRepo, sqlstore.NewPremiumRepository(d), subRepo, activityRepo, tx, clk, freeLimit, log)
	friendSvc := services.NewFriendService(friendRepo, userRepo, profileRepo, tx, clk, log)
	discoverSvc := services.NewDiscoverService(activityRepo, friendRepo, clk)
	featuredSvc := services.NewFeaturedService(sqlstore.NewFeaturedRepository(d), tx, clk)
	profileSvc := services.NewProfileService(profileRepo, userRepo, subRepo, friendRepo, analyticsSvc)
	inviteSvc := services.NewInviteService(userRepo, friendRepo, friendSvc)
	consentSvc := services.NewConsentService(sqlstore.NewConsentRepository(d), clk)
	recommendationSvc := services.NewRecommendationService(sqlstore.NewRecommendationRepository(d), clk, log)

	return router.New(cfg, log, &router.Handlers{
		Health:         handlers.NewHealthHandler(d, log),
		Auth:           handlers.NewAuthHandler(userSvc, log, val),
		Subscription:   handlers.NewSubscriptionHandler(subSvc, log, val),
		Analytics:      handlers.NewAnalyticsHandler(analyticsSvc, log),
		Premium:        handlers.NewPremiumHandler(premiumSvc, log, val),
		Friend:         handlers.NewFriendHandler(friendSvc, userSvc, log, val),
		Discover:       handlers.NewDiscoverHandler(discoverSvc, featuredSvc, log),
		Profile:        handlers.NewProfileHandler(profileSvc, log, val),
		Invite:         handlers.NewInviteHandler(inviteSvc, log),
		Consent:        handlers.NewConsentHandler(consentSvc, log, val),
		Recommendation: handlers.NewRecommendationHandler(recommendationSvc, log, val),
	})
}

// Run serves until ctx is cancelled, then shuts down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if a.roller != nil {
		if err := a.roller.Start(ctx); err != nil {
			return err
		}
		defer a.roller.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(map[string]interface{}{
			"addr":    a.server.Addr,
			"dialect": a.db.Dialect().Name(),
		}).Info("Paycal API listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.logger.Info("Shutting down server")
	return a.server.Shutdown(shutdownCtx)
}
