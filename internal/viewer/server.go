// Package viewer serves the collected corpus over a small JSON API:
// channels with pagination and search, their videos, the comments of a
// video, and the run history.

package viewer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

type Server struct {
	Logger log.Logger
	Config *cfg.Config
	Mysql  *db.Mysql
	server *http.Server
	port   int
}

func NewServer(logger log.Logger, config *cfg.Config, mysql *db.Mysql, port int) (*Server, error) {
	return &Server{
		Logger: logger,
		Config: config,
		Mysql:  mysql,
		port:   port,
	}, nil
}

// Start initializes and starts the HTTP server. It blocks until the
// server stops.
func (s *Server) Start() error {
	handler, err := NewHandler(s.Logger, s.Config, s.Mysql)
	if err != nil {
		return fmt.Errorf("failed to create viewer handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(context.Background(), "Starting viewer server on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		s.Logger.Info(ctx, "Shutting down viewer server")
		return s.server.Shutdown(ctx)
	}
	return nil
}
