// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/louisbranch/partsbox-mcp/internal/mcp/service"
	"github.com/louisbranch/partsbox-mcp/internal/platform/config"
	"github.com/louisbranch/partsbox-mcp/internal/platform/otel"
)

// Config holds MCP command configuration. The API key is env-only so it
// never shows up in process listings.
type Config struct {
	APIKey          string `env:"PARTSBOX_API_KEY"`
	BaseURL         string `env:"PARTSBOX_BASE_URL"`
	HTTPAddr        string `env:"PARTSBOX_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport       string `env:"PARTSBOX_MCP_TRANSPORT" envDefault:"stdio"`
	CacheTTLSeconds int    `env:"PARTSBOX_CACHE_TTL_SECONDS" envDefault:"300"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "PartsBox API base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.IntVar(&cfg.CacheTTLSeconds, "cache-ttl", cfg.CacheTTLSeconds, "Pagination cache TTL in seconds")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "partsbox-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		CacheTTL:  time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
