package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/climb/internal/cache"
	"github.com/jonathan/climb/internal/config"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/llm"
	"github.com/jonathan/climb/internal/logger"
	"github.com/jonathan/climb/internal/server"
	"github.com/jonathan/climb/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the application tracker, pipeline forecast and ATS scoring endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if serveMigrate {
		applied, err := database.Migrate(ctx)
		if err != nil {
			return err
		}
		log.Info("migrations applied", zap.Strings("files", applied))
	}

	opts := server.Options{
		Port:   cfg.Port,
		DB:     database,
		Logger: log,
		RateLimit: ratelimit.NewConfig(
			cfg.RateLimitEnabled,
			cfg.RateLimitDefault,
			cfg.RateLimitWindow,
			cfg.RateLimitWhitelist,
			cfg.RateLimitBlacklist,
		),
	}

	if opts.JWT, err = cfg.JWT(); err != nil {
		return err
	}
	if opts.Password, err = cfg.Password(); err != nil {
		return err
	}

	if cfg.RedisURL != "" {
		c, err := cache.Connect(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = c.Close() }()
		opts.Cache = c
	} else {
		log.Info("REDIS_URL not set, result caching disabled")
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, &llm.Config{Model: cfg.GeminiModel, Temperature: llm.DefaultConfig().Temperature}, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		opts.LLM = client
	} else {
		log.Info("GEMINI_API_KEY not set, keyword extraction disabled")
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
