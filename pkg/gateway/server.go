package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	ServiceName = "flowchart-explainer"

	EndPointAnalyze = "/analyze-flowchart"
	EndPointRoot    = "/"
	EndPointHealth  = "/health"
	EndPointMetrics = "/metrics"
)

var (
	allowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
	allowMethods = []string{"GET", "POST", "OPTIONS"}

	allowHeadersValue = strings.Join(allowHeaders, ", ")
	allowMethodsValue = strings.Join(allowMethods, ", ")
)

type Server struct {
	addr     string
	router   *gin.Engine
	metrics  *Metrics
	logger   zerolog.Logger
	shutdown time.Duration
}

// NewServer wires the routes. A nil registry gets a private one so several servers
// can coexist in one process.
func NewServer(addr string, a Analyzer, reg *prometheus.Registry, logger zerolog.Logger) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := NewMetrics(reg)
	h := NewHandlers(a, m, logger)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    allowMethods,
		AllowHeaders:    allowHeaders,
		MaxAge:          12 * time.Hour,
	}))

	router.GET(EndPointHealth, h.HealthCheck)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	for _, path := range []string{EndPointAnalyze, EndPointRoot} {
		router.POST(path, h.AnalyzeFlowchart)
		router.OPTIONS(path, h.Preflight)
	}

	return &Server{addr: addr, router: router, metrics: m, logger: logger, shutdown: 10 * time.Second}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting HTTP server")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
