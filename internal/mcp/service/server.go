package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/partsbox-mcp/internal/mcp/domain"
	"github.com/louisbranch/partsbox-mcp/internal/pagecache"
	"github.com/louisbranch/partsbox-mcp/internal/partsbox"
	"github.com/louisbranch/partsbox-mcp/internal/query"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "PartsBox MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// APIKey authenticates against the PartsBox API. Required.
	APIKey string
	// BaseURL overrides the PartsBox API root, mainly for tests.
	BaseURL string
	// CacheTTL overrides the pagination cache entry lifetime. Zero uses
	// the default.
	CacheTTL time.Duration
	// Transport selects stdio or HTTP. Empty defaults to stdio.
	Transport TransportKind
	// HTTPAddr is the bind address for HTTP transport. Defaults to
	// localhost:8081.
	HTTPAddr string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server backed by the PartsBox API.
func New(cfg Config) (*Server, error) {
	client, err := partsbox.New(partsbox.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	if err != nil {
		return nil, fmt.Errorf("configure PartsBox client: %w", err)
	}
	return newServer(client, cfg.CacheTTL), nil
}

// newServer wires tool registrations over any inventory API so tests can
// substitute a fake upstream.
func newServer(api domain.InventoryAPI, cacheTTL time.Duration) *Server {
	if cacheTTL <= 0 {
		cacheTTL = pagecache.DefaultTTL
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	pager := domain.NewPager(pagecache.New(cacheTTL), query.New())
	registerTools(mcpServer, api, pager)
	return &Server{mcpServer: mcpServer}
}

// Run is the service entrypoint and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		server, err := New(cfg)
		if err != nil {
			return err
		}
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport.
// Context cancellation is the normal shutdown path, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// runWithHTTPTransport serves the same tool handlers over streamable HTTP.
// One server instance is shared by every HTTP session, so the pagination
// cache spans sessions the same way it does for a long-lived stdio client.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	// Default to localhost-only binding.
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}

	server, err := New(cfg)
	if err != nil {
		return err
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.mcpServer
	}, nil)

	httpServer := &http.Server{Addr: httpAddr, Handler: handler}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
	}()

	log.Printf("serving MCP over HTTP on %s", httpAddr)
	err = httpServer.ListenAndServe()
	<-shutdownDone
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
