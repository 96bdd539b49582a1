package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goia/careers-os/internal/web/handlers"
)

// Config holds server configuration
type Config struct {
	Port          int
	AllowedOrigin string
	SubmitRPS     float64
	SubmitBurst   int
}

// Handlers bundles all route handlers for registration.
type Handlers struct {
	Applications  *handlers.ApplicationsHandler
	Jobs          *handlers.JobsHandler
	Templates     *handlers.TemplatesHandler
	Emails        *handlers.EmailsHandler
	Notifications *handlers.NotificationsHandler
	Subscribe     *handlers.SubscribeHandler
	Stats         *handlers.StatsHandler
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	listener   net.Listener
	hub        *Hub
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config, h *Handlers, hub *Hub) *Server {
	srv := &Server{
		router: chi.NewRouter(),
		config: cfg,
		hub:    hub,
	}

	srv.setupMiddleware()
	srv.setupRoutes(h)

	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(middleware.Compress(5))

	origin := s.config.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS", "DELETE", "PUT", "PATCH"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
}

func (s *Server) setupRoutes(h *Handlers) {
	// Health endpoint
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// WebSocket for the admin dashboard
	if s.hub != nil {
		s.router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.hub, w, r)
		})
	}

	// Outcome email endpoints; paths are fixed by the frontend contract
	if h.Emails != nil {
		s.router.Route("/emails", func(r chi.Router) {
			r.Post("/send", h.Emails.Send)
			r.Post("/send-batch", h.Emails.SendBatch)
		})
	}

	// Email template CRUD; query-parameter addressing per the frontend contract
	if h.Templates != nil {
		s.router.Route("/email-templates", func(r chi.Router) {
			r.Get("/", h.Templates.Get)
			r.Post("/", h.Templates.Create)
			r.Put("/", h.Templates.Update)
			r.Post("/default", h.Templates.SetDefault)
			r.Delete("/", h.Templates.Delete)
		})
	}

	// Landing page signup
	if h.Subscribe != nil {
		s.router.Post("/api/subscribe", h.Subscribe.Subscribe)
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		if h.Jobs != nil {
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", h.Jobs.List)
				r.Post("/", h.Jobs.Create)
				r.Get("/{id}", h.Jobs.GetByID)
				r.Put("/{id}", h.Jobs.Update)
				r.Delete("/{id}", h.Jobs.Delete)
			})
		}

		if h.Applications != nil {
			limiter := NewSubmissionLimiter(s.config.SubmitRPS, s.config.SubmitBurst)
			r.Route("/applications", func(r chi.Router) {
				r.With(limiter.Middleware).Post("/", h.Applications.Create)
				r.Get("/", h.Applications.List)
				r.Get("/{id}", h.Applications.GetByID)
				r.Patch("/{id}/status", h.Applications.UpdateStatus)
			})
		}

		if h.Notifications != nil {
			r.Get("/notifications", h.Notifications.List)
		}

		if h.Stats != nil {
			r.Get("/stats", h.Stats.GetStats)
		}
	})
}

// Router returns the underlying chi router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Port)
}
