package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/helmcode/flowchart-explainer/pkg/analyzer"
	"github.com/helmcode/flowchart-explainer/pkg/llm"
	"github.com/helmcode/flowchart-explainer/pkg/model"
)

// Analyzer is the part of analyzer.Analyzer the handlers need.
type Analyzer interface {
	AnalyzeDetailed(ctx context.Context, imageBase64 string) (*analyzer.Result, error)
}

type Handlers struct {
	analyzer Analyzer
	metrics  *Metrics
	logger   zerolog.Logger
}

func NewHandlers(a Analyzer, m *Metrics, logger zerolog.Logger) *Handlers {
	return &Handlers{analyzer: a, metrics: m, logger: logger}
}

// HealthCheck returns service health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// AnalyzeFlowchart answers {imageBase64} with {explanations} or, on any failure,
// a 500 carrying {error}.
func (h *Handlers) AnalyzeFlowchart(c *gin.Context) {
	start := time.Now()

	var req model.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, start, resultInvalidInput, errors.New("Invalid request body: "+err.Error()))
		return
	}

	res, err := h.analyzer.AnalyzeDetailed(c.Request.Context(), req.ImageBase64)
	if err != nil {
		h.fail(c, start, classify(err), err)
		return
	}

	result := resultOK
	if res.Fallback {
		result = resultFallback
	}
	h.observe(result, start)
	c.JSON(http.StatusOK, gin.H{"explanations": res.Explanations})
}

// Preflight answers OPTIONS requests that carry no Origin header and so are not
// handled by the CORS middleware.
func (h *Handlers) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", allowHeadersValue)
	c.Header("Access-Control-Allow-Methods", allowMethodsValue)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) fail(c *gin.Context, start time.Time, result string, err error) {
	h.observe(result, start)
	h.logger.Error().Err(err).Str("result", result).Msg("error in analyze-flowchart")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *Handlers) observe(result string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.RequestsTotal.WithLabelValues(result).Inc()
	h.metrics.AnalysisDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func classify(err error) string {
	var upErr *llm.UpstreamError
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		return resultInvalidInput
	case errors.Is(err, analyzer.ErrConfig):
		return resultConfigError
	case errors.As(err, &upErr):
		return resultUpstreamError
	case errors.Is(err, analyzer.ErrEmptyResponse):
		return resultEmptyResponse
	default:
		return resultError
	}
}
