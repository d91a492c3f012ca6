package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
	cfg    ServerConfig
	http   *http.Server
}

func NewServer(log *logger.Logger, cfg ServerConfig, router RouterConfig) *Server {
	engine := NewRouter(router)
	return &Server{
		Engine: engine,
		log:    log.With("component", "HTTPServer"),
		cfg:    cfg,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info("HTTP server shutting down", "timeout", timeout.String())
	if err := s.http.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}
