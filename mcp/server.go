// Package mcp runs the Memoire MCP tool server, exposing journal entry
// creation and search as tools over stdio or streamable HTTP.
package mcp

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	clientpkg "github.com/akshat1423/memoire/client"
	appconfig "github.com/akshat1423/memoire/internal/config"
	"github.com/akshat1423/memoire/mcp/internal/handlers"
)

type config struct {
	StoreURL        string
	StoreAPIKey     string
	LogLevel        zerolog.Level
	ServerName      string
	ServerVersion   string
	ListenAddr      string
	ShutdownTimeout time.Duration
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

// loadConfig loads configuration from environment variables and flags.
func loadConfig() (*config, error) {
	app, err := appconfig.Load()
	if err != nil {
		return nil, err
	}

	cfg := &config{
		StoreURL:        app.StoreURL,
		StoreAPIKey:     app.StoreAPIKey,
		LogLevel:        appconfig.ParseLevel(app.LogLevel),
		ServerName:      getEnvOrDefault("MCP_SERVER_NAME", "memoire-mcp-server"),
		ServerVersion:   getEnvOrDefault("MCP_SERVER_VERSION", "0.1.0"),
		ListenAddr:      getEnvOrDefault("MCP_LISTEN_ADDR", ":11650"),
		ShutdownTimeout: parseDurationOrDefault("SHUTDOWN_TIMEOUT", "10s"),
		HTTPReadTimeout: parseDurationOrDefault("HTTP_READ_TIMEOUT", "5s"),
		HTTPIdleTimeout: parseDurationOrDefault("HTTP_IDLE_TIMEOUT", "120s"),
	}

	var rawLogLevel string
	flag.StringVar(&cfg.StoreURL, "store-url", cfg.StoreURL, "Base URL of the Memoire memory store")
	flag.StringVar(&rawLogLevel, "log-level", cfg.LogLevel.String(), "Log level: debug|info|warn|error")
	flag.Parse()

	if rawLogLevel != "" {
		cfg.LogLevel = appconfig.ParseLevel(rawLogLevel)
	}
	return cfg, nil
}

func (c *config) initLogger() {
	appconfig.InitLogger()
	appconfig.SetLogLevel(c.LogLevel)
	log.Logger = log.With().Caller().Logger()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(envKey, defaultValue string) time.Duration {
	if value := os.Getenv(envKey); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

// RunMCPServer starts the MCP server with environment-driven configuration.
func RunMCPServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.initLogger()

	log.Info().Str("store_url", cfg.StoreURL).Msg("Creating Memoire client")
	memoireClient := clientpkg.New(cfg.StoreURL, cfg.StoreAPIKey)
	log.Info().Msg("Client created successfully")

	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewEntryHandler(memoireClient), "entry")
	registerHandler(s, handlers.NewSearchHandler(memoireClient), "search")

	if shouldUseStdio() {
		log.Info().Msg("Starting Memoire MCP server (stdio transport)")
		if err := server.ServeStdio(s); err != nil {
			log.Fatal().Err(err).Msg("Stdio server error")
		}
		return nil
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("Starting Memoire MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // no deadline, required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
		if err := memoireClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Memoire client")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines the transport based on environment.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	// Use stdio if stdin is not a terminal (launched by another process).
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
