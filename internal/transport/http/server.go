package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"eventshare/internal/service"
)

// Server represents the HTTP server
type Server struct {
	handler *Handler
	router  chi.Router
	server  *http.Server
	port    string
	log     zerolog.Logger
}

// NewServer creates a new HTTP server
func NewServer(svc service.ShareService, port string, log zerolog.Logger) *Server {
	handler := NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", handler.Health)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/share", handler.GenerateShare)
		r.Get("/config", handler.GetConfig)
		r.Put("/config", handler.UpdateConfig)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", handler.ListEvents)
			r.Post("/", handler.CreateEvent)
			r.Get("/{id}", handler.GetEvent)
			r.Patch("/{id}", handler.UpdateEventStatus)
			r.Delete("/{id}", handler.DeleteEvent)
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		handler: handler,
		router:  r,
		server:  server,
		port:    port,
		log:     log,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("port", s.port).Msg("server starting")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("server shutting down")
	return s.server.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() string {
	return s.port
}

// Router returns the configured router (useful for testing)
func (s *Server) Router() chi.Router {
	return s.router
}
