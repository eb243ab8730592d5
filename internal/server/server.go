// Package server exposes fault fractal generation over HTTP and websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"faultmap/internal/config"
	"faultmap/pkg/core"
	"faultmap/pkg/heightmap/faultfractal"
)

// Server serves height maps. Each HTTP request gets its own generator; each
// websocket connection owns one generator for its lifetime.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
}

// New creates a Server with the given config and logger.
func New(cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/heightmap/{size:[0-9]+}/{seed:-?[0-9]+}.{format:[a-z]+}", s.handleHeightMap).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleSession)
	s.router = r
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address and blocks until the context is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.log.Info("server started",
		"addr", listener.Addr().String(),
		"maxSize", s.cfg.MaxSize,
		"maxIterations", s.cfg.MaxIterations,
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("shutdown", "error", err)
		}
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	s.log.Info("server shutting down")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// checkLimits rejects configs that would cost more than the server allows.
func (s *Server) checkLimits(cfg faultfractal.Config) error {
	if cfg.Size > s.cfg.MaxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", core.ErrInvalidParameter, cfg.Size, s.cfg.MaxSize)
	}
	if cfg.Iterations > s.cfg.MaxIterations {
		return fmt.Errorf("%w: iterations %d exceeds limit %d", core.ErrInvalidParameter, cfg.Iterations, s.cfg.MaxIterations)
	}
	return cfg.Validate()
}
