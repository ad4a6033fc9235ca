package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/moolah/internal/server"
	"github.com/iwvelando/moolah/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	serveConfigFile string
	serveAddress    string
	serveMaxRequest string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation API over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/calculate  - evaluate a JSON batch of calculations
  POST /api/upload     - evaluate an uploaded YAML configuration
  POST /api/export     - convert a JSON batch into YAML configuration
  GET  /api/formulas   - list formulas and their inputs
  GET  /api/version    - report the server version`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveConfigFile, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override, e.g. :8080")
	serveCmd.Flags().StringVar(&serveMaxRequest, "max-request-size", "", "request size limit override, e.g. 1MB")
}

func runServe(ctx context.Context) error {
	cfg, err := server.LoadConfig(serveConfigFile)
	if err != nil {
		printError(fmt.Sprintf("failed to load server configuration at %s", serveConfigFile), err)
		return err
	}

	if serveAddress != "" {
		cfg.Address = serveAddress
	}
	if serveMaxRequest != "" {
		size, err := server.ParseSize(serveMaxRequest)
		if err != nil {
			printError("invalid --max-request-size", err)
			return err
		}
		cfg.SetRequestSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		printError("failed to initialize logger", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg.RequestSizeBytes(), Version),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxRequestSize", cfg.RequestSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("HTTP server stopped",
			zap.String("op", "serve"),
			zap.Error(err),
		)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server", zap.String("op", "serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "serve"),
			zap.Error(err),
		)
		return err
	}
	return nil
}
