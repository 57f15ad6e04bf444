// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zaikabox/v1/pkg/healthcheck"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/application/order"
	"github.com/zaikabox/v1/internal/application/user"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/infrastructure/config"
	"github.com/zaikabox/v1/internal/infrastructure/http/handlers"
	"github.com/zaikabox/v1/internal/infrastructure/http/middleware"
)

// APIServer serves the JSON API.
type APIServer struct {
	config          *config.Config
	logger          *zap.Logger
	server          *http.Server
	router          *chi.Mux
	userService     *user.Service
	orderService    *order.Service
	advisoryService *advisory.Service
	catalog         *menu.Catalog
	health          *healthcheck.HealthCheck
}

// NewAPIServer creates a new API server instance.
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	userService *user.Service,
	orderService *order.Service,
	advisoryService *advisory.Service,
	catalog *menu.Catalog,
	health *healthcheck.HealthCheck,
) *APIServer {
	server := &APIServer{
		config:          cfg,
		logger:          log,
		userService:     userService,
		orderService:    orderService,
		advisoryService: advisoryService,
		catalog:         catalog,
		health:          health,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	r.Get("/health", s.handleHealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.logger)
	menuH := handlers.NewMenuAPIHandlers(s.catalog, s.logger)
	advisoryH := handlers.NewAdvisoryAPIHandlers(s.advisoryService, s.userService, s.catalog, s.logger)
	orderH := handlers.NewOrderAPIHandlers(s.orderService, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.userService))
			r.Get("/profile", authH.GetProfile)
			r.Put("/profile/health", authH.UpdateHealthProfile)
		})
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", menuH.ListItems)
		r.Get("/categories", menuH.ListCategories)
		r.Get("/{id}", menuH.GetItem)
	})

	r.Route("/advisory", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.userService))
		r.Get("/recommendations", advisoryH.GetRecommendations)
		r.Post("/safety-check", advisoryH.CheckSafety)
		r.Post("/chat", advisoryH.Chat)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.userService))
		r.Get("/", orderH.GetCart)
		r.Delete("/", orderH.ClearCart)
		r.Post("/items", orderH.AddToCart)
		r.Delete("/items/{itemID}", orderH.RemoveFromCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.userService))
		r.Post("/", orderH.PlaceOrder)
		r.Get("/", orderH.ListOrders)
		r.Get("/active", orderH.ActiveOrder)
		r.Get("/{id}", orderH.GetOrder)
		r.Post("/{id}/cancel", orderH.CancelOrder)
	})
}

// Start starts the HTTP server.
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
	)
	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance.
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the server.
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := s.health.Check(r.Context())

	status := http.StatusOK
	if response.Status == healthcheck.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
