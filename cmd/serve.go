package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/helmcode/flowchart-explainer/pkg/analyzer"
	"github.com/helmcode/flowchart-explainer/pkg/config"
	"github.com/helmcode/flowchart-explainer/pkg/gateway"
	"github.com/helmcode/flowchart-explainer/pkg/llm"
	"github.com/helmcode/flowchart-explainer/pkg/logging"
)

var servePort string

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flowchart analysis gateway",
		Long: `Run the HTTP gateway that forwards flowchart images to the AI provider.

Endpoints:
  POST /analyze-flowchart   {"imageBase64": "data:image/png;base64,..."}
  GET  /health
  GET  /metrics

The provider API key (LOVABLE_API_KEY, or OPENAI_API_KEY with AI_PROVIDER=openai)
is read on every request, so the server starts without it.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	factory, err := llm.NewFactory(cfg.Provider, cfg.LLMSettings(), logger)
	if err != nil {
		return err
	}
	if os.Getenv(factory.KeyEnv()) == "" {
		logger.Warn().Str("env", factory.KeyEnv()).Msg("API key is not set, requests will fail until it is configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	srv := gateway.NewServer(":"+cfg.Port, analyzer.New(factory, logger), reg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
