package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lectern/internal/adapters/gcs"
	"lectern/internal/adapters/otel"
	"lectern/internal/adapters/turso"
	"lectern/internal/auth"
	"lectern/internal/config"
	"lectern/internal/lectures"
	"lectern/internal/ports"
	"lectern/internal/query"
	"lectern/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web application",
	Long: `Start the web application server.

Examples:
  lectern serve              # Start on the configured port (default 8080)
  lectern serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides LECTERN_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := turso.NewDB(cfg.Database.URL, cfg.Database.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Metrics are best-effort: without a collector we degrade to no-op.
	var exporter ports.MetricsExporter
	exporter, err = otel.NewExporter(ctx, otel.Config{
		Endpoint: cfg.OTEL.Endpoint,
		Enabled:  cfg.OTEL.Enabled,
		Insecure: cfg.OTEL.Insecure,
	})
	if err != nil {
		exporter = otel.NewNoOpExporter()
	}
	defer func() { _ = exporter.Close(context.Background()) }()

	cache := query.New(query.WithMetrics(exporter))
	store := lectures.NewStore(cache, turso.NewLectureRepository(db), lectures.WithMetrics(exporter))
	defer store.Close()

	var audio ports.AudioStorage
	if cfg.Storage.Bucket != "" {
		audio, err = gcs.New(ctx, gcs.Config{
			Bucket:          cfg.Storage.Bucket,
			CredentialsFile: cfg.Storage.CredentialsFile,
			CredentialsJSON: cfg.Storage.CredentialsJSON,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize audio storage: %w", err)
		}
	} else {
		logger.Warn("no storage bucket configured, audio playback disabled")
	}

	server, err := web.NewServer(web.Deps{
		Port:     cfg.Port,
		Store:    store,
		Audio:    audio,
		Verifier: auth.NewVerifier(cfg.Auth.TokenSecret, cfg.Auth.TokenIssuer),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			logger.Info("shutting down")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	return g.Wait()
}
