package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"realestate-api/utils"
)

type Server struct {
	httpServer *http.Server
	logger     *utils.Logger
}

// NewRouter mounts the listing endpoints behind the logging and recovery
// middleware.
func NewRouter(h *PropertyHandler, logger *utils.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(logger), middleware.Recoverer)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.FindProperties)
		r.Get("/statistics", h.GetStatistics)
	})
	return r
}

func NewServer(port string, h *PropertyHandler, logger *utils.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(h, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("[api] Starting REST server on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("[api] Stopping REST server...")
	return s.httpServer.Shutdown(ctx)
}
