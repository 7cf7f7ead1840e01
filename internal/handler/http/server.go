package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/config"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps зависимости HTTP слоя
type Deps struct {
	Storage    repository.Storage
	Profiles   *service.ProfileService
	Links      *service.LinkService
	Socials    *service.SocialService
	Engagement *service.EngagementService
	Analytics  *service.AnalyticsService
	JWT        *auth.JWTService
	Version    string
}

// Server HTTP сервер с обработчиками
type Server struct {
	cfg *config.Config
	log *zap.Logger

	healthHandler    *HealthHandler
	beaconHandler    *BeaconHandler
	profileHandler   *ProfileHandler
	linksHandler     *LinksHandler
	socialsHandler   *SocialsHandler
	analyticsHandler *AnalyticsHandler
	plansHandler     *PlansHandler
	authMiddleware   *auth.Middleware

	httpServer *http.Server
}

// NewServer создает новый HTTP сервер
func NewServer(cfg *config.Config, deps Deps, log *zap.Logger) *Server {
	trustProxy := cfg.Tracking.TrustProxy

	s := &Server{
		cfg:              cfg,
		log:              log,
		healthHandler:    NewHealthHandler(deps.Storage, deps.Version, log),
		beaconHandler:    NewBeaconHandler(deps.Engagement, trustProxy, log),
		profileHandler:   NewProfileHandler(deps.Profiles, deps.Engagement, trustProxy, log),
		linksHandler:     NewLinksHandler(deps.Links, log),
		socialsHandler:   NewSocialsHandler(deps.Socials, log),
		analyticsHandler: NewAnalyticsHandler(deps.Analytics, log),
		plansHandler:     NewPlansHandler(),
		authMiddleware:   auth.NewMiddleware(deps.JWT, log),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return s
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health checks (без аутентификации)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/ready", s.healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.HTTPServer.RequestTimeout))

		// Публичная страница профиля
		r.Get("/p/{handle}", s.profileHandler.PublicPage)

		r.Route("/api", func(r chi.Router) {
			r.With(s.authMiddleware.OptionalAuth).Get("/plans", s.plansHandler.ListPlans)

			// Beacon endpoints ограничены по IP
			r.Group(func(r chi.Router) {
				r.Use(httprate.Limit(
					s.cfg.RateLimit.BeaconRequests,
					s.cfg.RateLimit.BeaconWindow,
					httprate.WithKeyFuncs(keyByClientIP(s.cfg.Tracking.TrustProxy)),
				))
				r.Post("/click", s.beaconHandler.Click)
				r.Post("/view", s.beaconHandler.View)
			})

			// API endpoints (с аутентификацией)
			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware.RequireAuth)

				r.Get("/me", s.profileHandler.Me)
				r.Post("/profile", s.profileHandler.CreateProfile)
				r.Patch("/profile", s.profileHandler.UpdateProfile)
				r.Get("/analytics", s.analyticsHandler.Summary)

				r.Route("/link", func(r chi.Router) {
					r.Post("/", s.linksHandler.CreateLink)
					r.Post("/reorder", s.linksHandler.ReorderLinks)
					r.Patch("/{id}", s.linksHandler.UpdateLink)
					r.Delete("/{id}", s.linksHandler.DeleteLink)
					r.Post("/{id}/move", s.linksHandler.MoveLink)
				})

				r.Route("/social", func(r chi.Router) {
					r.Post("/", s.socialsHandler.CreateSocial)
					r.Post("/reorder", s.socialsHandler.ReorderSocials)
					r.Patch("/{id}", s.socialsHandler.UpdateSocial)
					r.Delete("/{id}", s.socialsHandler.DeleteSocial)
					r.Post("/{id}/move", s.socialsHandler.MoveSocial)
				})
			})
		})
	})

	return r
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", zap.String("address", s.cfg.HTTPServer.Address))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop корректно останавливает HTTP сервер
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler возвращает корневой обработчик со всеми маршрутами
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
