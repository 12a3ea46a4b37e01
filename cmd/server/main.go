// Command server runs the inventory HTTP service.
//
// The listen address and the photo cache directory come from flags, with
// environment variables (optionally via a .env file) as fallback:
//
//	server --host 127.0.0.1 --port 8080 --cache ./cache
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ostapk/simple-inventory/pkg/inventory/api"
	"github.com/ostapk/simple-inventory/pkg/inventory/config"
)

// envConfig is the environment fallback for the CLI flags.
type envConfig struct {
	Host        string `env:"HOST"`
	Port        string `env:"PORT"`
	CacheDir    string `env:"CACHE_DIR"`
	StorageURL  string `env:"STORAGE_URL"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
}

func main() {
	var (
		host     string
		port     string
		cacheDir string
	)

	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Inventory tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(host, port, cacheDir)
		},
	}

	rootCmd.Flags().StringVarP(&host, "host", "H", "", "server host")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "server port")
	rootCmd.Flags().StringVarP(&cacheDir, "cache", "c", "", "path to the photo cache directory")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(host, port, cacheDir string) error {
	_ = godotenv.Load()

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	// Flags win over environment.
	if host == "" {
		host = env.Host
	}
	if port == "" {
		port = env.Port
	}
	if cacheDir == "" {
		cacheDir = env.CacheDir
	}

	if host == "" {
		return errors.New("host is required (--host or HOST)")
	}
	if port == "" {
		return errors.New("port is required (--port or PORT)")
	}

	storageURL := env.StorageURL
	if cacheDir != "" {
		storageURL = "file://" + cacheDir
	}
	if storageURL == "" {
		return errors.New("cache directory is required (--cache, CACHE_DIR or STORAGE_URL)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	serverConfig, err := config.Load(
		config.WithHost(host),
		config.WithPort(port),
		config.WithEnvironment(env.Environment),
		config.WithStorage(storageURL),
	)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	svc, err := serverConfig.BuildService(logger)
	if err != nil {
		return fmt.Errorf("build service: %w", err)
	}

	handler := api.NewHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(api.RequestID)
	r.Use(api.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Mount("/", handler.Routes())

	httpServer := &http.Server{
		Addr:    serverConfig.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"addr", fmt.Sprintf("http://%s", serverConfig.Addr()),
			"docs", fmt.Sprintf("http://%s/docs", serverConfig.Addr()),
			"storage", serverConfig.StorageURL,
			"environment", serverConfig.Environment,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}
