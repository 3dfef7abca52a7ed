package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/citycopy"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP routes. A nil limiter disables rate limiting.
//
// Client addresses come from the connection unless the peer is one of
// trustedProxies (IPs or CIDRs), in which case X-Forwarded-For is honoured.
func NewRouter(h *Handler, limiter citycopy.RateLimiter, logger *slog.Logger, trustedProxies ...string) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, citycopy.Errorf(citycopy.EINVALID, "invalid trusted proxies: %v", err)
	}
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	router.GET("/health", h.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(RateLimit(limiter))
	}
	{
		contents := v1.Group("/locality-content")
		contents.POST("", h.GetOrGenerate)
		contents.GET("", h.ListContents)
		contents.GET("/:slug", h.GetContent)
	}

	return router, nil
}

// Server serves the HTTP API.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.server.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
