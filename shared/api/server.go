// shared/api/server.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/naijascout/scout-services/shared/metrics"
	"go.uber.org/zap"
)

// ServerOptions tunes the HTTP server built by NewBaseServer.
type ServerOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// CORSOrigins lists allowed origins. Empty means any origin.
	CORSOrigins []string
}

// DefaultServerOptions matches the timeouts the services have always run with.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

type BaseServer struct {
	Router  *mux.Router
	Server  *http.Server
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

func NewBaseServer(addr string, opts ServerOptions, logger *zap.Logger, m *metrics.Metrics) *BaseServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(logger, m))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		handlers.MaxAge(86400),
	)

	stdLog := zap.NewStdLog(logger.Named("http"))
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(stdLog),
		handlers.PrintRecoveryStack(true),
	)

	server := &http.Server{
		Addr:         addr,
		Handler:      recovery(cors(router)),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
		ErrorLog:     stdLog,
	}

	return &BaseServer{
		Router:  router,
		Server:  server,
		Logger:  logger,
		Metrics: m,
	}
}

// Handler returns the full middleware chain, for tests that drive the server in-process.
func (bs *BaseServer) Handler() http.Handler {
	return bs.Server.Handler
}

func (bs *BaseServer) Start() error {
	bs.Logger.Info("Starting HTTP server", zap.String("addr", bs.Server.Addr))
	// ListenAndServe returns http.ErrServerClosed on graceful shutdown
	if err := bs.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

func (bs *BaseServer) Shutdown(ctx context.Context) error {
	bs.Logger.Info("Shutting down HTTP server...")
	return bs.Server.Shutdown(ctx)
}
