package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/paycal/backend/internal/api/handlers"
	"github.com/paycal/backend/internal/api/middleware"
	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/metrics"
)

type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Subscription   *handlers.SubscriptionHandler
	Analytics      *handlers.AnalyticsHandler
	Premium        *handlers.PremiumHandler
	Friend         *handlers.FriendHandler
	Discover       *handlers.DiscoverHandler
	Profile        *handlers.ProfileHandler
	Invite         *handlers.InviteHandler
	Consent        *handlers.ConsentHandler
	Recommendation *handlers.RecommendationHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL, cfg.Server.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/api/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		r.Post("/api/auth/register", h.Auth.Register)
		r.Post("/api/auth/login", h.Auth.Login)

		r.Get("/api/consent/privacy-policy", h.Consent.PrivacyPolicy)
		r.Get("/api/recommendations/occupations", h.Recommendation.Occupations)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/auth/me", h.Auth.Me)

		r.Route("/api/subscriptions", func(r chi.Router) {
			r.Get("/", h.Subscription.List)
			r.Post("/", h.Subscription.Create)
			r.Get("/{id}", h.Subscription.Get)
			r.Put("/{id}", h.Subscription.Update)
			r.Delete("/{id}", h.Subscription.Delete)
			r.Post("/{id}/usage", h.Subscription.LogUsage)
		})

		r.Route("/api/analytics", func(r chi.Router) {
			r.Get("/summary", h.Analytics.Summary)
			r.Get("/underused", h.Analytics.Underused)
			r.Get("/usage/{id}", h.Analytics.Usage)
			r.Get("/price-history/{id}", h.Analytics.PriceHistory)
			r.Get("/categories", h.Analytics.Categories)
		})

		r.Route("/api/premium", func(r chi.Router) {
			r.Get("/status", h.Premium.Status)
			r.Get("/features", h.Premium.Features)
			r.Post("/subscribe", h.Premium.Subscribe)
			r.Post("/cancel", h.Premium.Cancel)
		})

		r.Route("/api/friends", func(r chi.Router) {
			r.Get("/search", h.Friend.Search)
			r.Post("/request", h.Friend.SendRequest)
			r.Get("/requests/incoming", h.Friend.Incoming)
			r.Get("/requests/outgoing", h.Friend.Outgoing)
			r.Post("/request/{requestId}/accept", h.Friend.Accept)
			r.Post("/request/{requestId}/reject", h.Friend.Reject)
			r.Get("/list", h.Friend.List)
			r.Delete("/{friendId}", h.Friend.Remove)
		})

		r.Route("/api/discover", func(r chi.Router) {
			r.Get("/feed", h.Discover.Feed)
			r.Get("/popular", h.Discover.Popular)
			r.Get("/trending", h.Discover.Trending)
			r.Get("/suggestions/{category}", h.Discover.Suggestions)
			r.Get("/friend/{friendId}", h.Discover.FriendActivity)
			r.Get("/weekly-featured", h.Discover.WeeklyFeatured)
			r.Post("/weekly-featured/{id}/impression", h.Discover.Impression)
			r.Post("/weekly-featured/{id}/click", h.Discover.Click)
		})

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/me", h.Profile.Me)
			r.Put("/me", h.Profile.Rename)
			r.Get("/settings/privacy", h.Profile.Settings)
			r.Put("/settings/privacy", h.Profile.UpdateSettings)
			r.Get("/{userId}", h.Profile.View)
		})

		r.Route("/api/invite", func(r chi.Router) {
			r.Get("/token", h.Invite.Token)
			r.Get("/user/{token}", h.Invite.Resolve)
			r.Post("/accept/{token}", h.Invite.Accept)
		})

		r.Route("/api/consent", func(r chi.Router) {
			r.Get("/status", h.Consent.Status)
			r.Post("/save", h.Consent.Save)
		})

		r.Route("/api/recommendations", func(r chi.Router) {
			r.Post("/profile", h.Recommendation.SaveProfile)
			r.Get("/profile", h.Recommendation.GetProfile)
			r.Get("/community", h.Recommendation.Community)
		})
	})

	return r
}
