package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fincast/internal/config"
	"fincast/internal/handlers/dashboard"
	apphttp "fincast/internal/http"
	"fincast/internal/logging"
	"fincast/internal/services/backend"
	"fincast/internal/services/dataloader"
	"fincast/internal/services/session"
	"fincast/internal/services/storage"
	"fincast/internal/templates"
	"fincast/internal/version"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// app is the wired server: its router and the page store swept in the
// background
type app struct {
	router http.Handler
	pages  *session.Store
}

// newApp builds every dependency from cfg. An empty backend URL serves the
// snapshot from the data directory and reports predictions as unavailable;
// store is only read in that case and may be nil otherwise.
func newApp(cfg *config.Config, store *storage.Storage, logger zerolog.Logger) (*app, error) {
	renderer, err := templates.New(cfg.TemplatesDirectory, cfg.Debug, logger)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	var (
		source    dashboard.SnapshotSource
		predictor dashboard.Predictor
	)
	if cfg.Offline() {
		files := dataloader.New(store)
		written, err := files.EnsureSample()
		if err != nil {
			return nil, fmt.Errorf("writing sample snapshot: %w", err)
		}
		if written {
			logger.Info().Str("file", store.Path(dataloader.SnapshotFile)).Msg("wrote sample snapshot")
		}
		source, predictor = files, backend.Unconfigured{}
		logger.Warn().Msg("no backend_url configured, serving the offline snapshot")
	} else {
		client := backend.NewClient(cfg.BackendURL, backend.WithTimeouts(cfg.SnapshotTimeout, cfg.PredictionTimeout))
		source, predictor = client, client
		logger.Info().Str("backend", client.BaseURL()).Msg("using prediction backend")
	}

	pages := session.NewStore(cfg.PageTTL)
	h := dashboard.New(pages, source, predictor, renderer, cfg.PredictionTimeout)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	fileServer := http.FileServer(http.Dir(cfg.StaticDirectory))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
	})

	h.RegisterRoutes(r)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		apphttp.JSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"offline": cfg.Offline(),
			"pages":   pages.Len(),
		})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		apphttp.JSON(w, http.StatusOK, version.Get())
	})

	return &app{router: r, pages: pages}, nil
}

// openDataDir opens and unlocks the data directory when serving offline.
// With a backend configured nothing is read from it, so it stays closed and
// no password is asked for.
func openDataDir(cfg *config.Config) (*storage.Storage, error) {
	if !cfg.Offline() {
		return nil, nil
	}
	store, err := storage.Open(cfg.DataDirectory)
	if err != nil {
		return nil, err
	}
	if err := unlock(store); err != nil {
		return nil, err
	}
	return store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.Debug, os.Stderr)
	if w := version.Get().Check(); w != "" {
		logger.Warn().Msg(w)
	}

	store, err := openDataDir(cfg)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, store, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go a.pages.Run(ctx.Done(), sweepInterval)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Str("data_dir", cfg.DataDirectory).
		Str("version", version.Get().Version).
		Msg("fincast listening")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}
