package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/blob"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/llm"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/pdf"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/server"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/server/ratelimit"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the auth, resume, template and admin endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		if err := database.Migrate(ctx, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Config: cfg,
		Store:  database,
		Blobs:  blobs,
		Renderer: pdf.NewChromeRenderer(pdf.Options{
			ChromePath: cfg.Chrome.Path,
			Timeout:    cfg.PDF.Timeout,
		}, logger),
		Logger: logger,
	}

	if cfg.Gemini.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig().WithModel(cfg.Gemini.Model), cfg.Gemini.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer func() { _ = client.Close() }()
		deps.LLM = client
	} else {
		logger.Info("GEMINI_API_KEY not set, text improvement uses heuristics")
	}

	if cfg.Redis.Address != "" {
		rdb, err := ratelimit.DialRedis(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		// the server closes the backend on shutdown
		deps.RateLimit = ratelimit.NewRedisBackend(rdb)
		logger.Info("rate limiting backed by redis", zap.String("addr", cfg.Redis.Address))
	}

	srv, err := server.New(deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// newBlobStore selects the upload backend named in the config
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Blob.Backend {
	case config.BlobBackendS3:
		return blob.NewS3Store(ctx, cfg.Blob.S3Bucket, cfg.Blob.S3Region)
	default:
		return blob.NewDiskStore(cfg.Blob.Dir, cfg.Blob.BaseURL)
	}
}
