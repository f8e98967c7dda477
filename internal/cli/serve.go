package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/article"
	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Veridict HTTP server",
	Long: `Start the HTTP server exposing the analysis endpoints:

  POST /api/analyze          analyze article text
  POST /api/extract-article  fetch a URL and extract its readable content
  GET  /healthz              liveness check

Example:
  veridict serve
  veridict serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set; analyze requests will fail until configured")
	}

	p := pipeline.NewPipeline(cfg, logger)
	extractor := article.NewExtractor(cfg.Article, cache.NewMemoryCache(cfg.Article.CacheTTL, cfg.Article.CacheTTL))

	srv := server.New(cfg, p, extractor, logger)
	logger.Info("starting server", "addr", cfg.Server.Addr, "model", cfg.OpenAI.Model)

	if err := srv.Run(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
