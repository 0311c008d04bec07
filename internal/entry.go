// Package internal provides the main application initialization and runtime logic.
package internal

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
	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/chat"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notestore"
	"github.com/starford/ansuz/internal/persist"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/uistate"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("persist_driver", cfg.Persist.Driver),
		slog.String("persist_path", cfg.Persist.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Open the durable state slot.
	var (
		provider persist.Provider
		file     *persist.File
	)
	switch cfg.Persist.Driver {
	case PersistDriverSQLite:
		db, err := persist.OpenSQLite(cfg.Persist.Path)
		if err != nil {
			return fmt.Errorf("open state slot: %w", err)
		}
		provider = db
	default:
		f, err := persist.NewFile(cfg.Persist.Path)
		if err != nil {
			return fmt.Errorf("open state slot: %w", err)
		}
		provider = f
		file = f
	}
	defer provider.Close()

	// Core stores.
	store := notestore.New()

	// SSE broker.
	broker := sse.NewBroker(250 * time.Millisecond)
	defer broker.Close()

	signals := uistate.New(
		uistate.WithTTL(cfg.UI.ToastTTL()),
		uistate.WithNotify(func(t models.Toast) {
			broker.Publish(sse.Event{Type: "toast", Data: t})
		}),
	)
	defer signals.Close()

	// Rehydrate persisted state before any surface can observe the store;
	// a corrupt slot falls back to defaults.
	signals.SetLoading(true)
	if err := persist.Rehydrate(provider, store); err != nil {
		logger.Warn("state rehydration failed, starting fresh", slog.String("error", err.Error()))
		signals.SetError(err.Error())
	}
	signals.SetLoading(false)

	// Assistant and chat pipeline.
	responder := assistant.NewSimulated(cfg.Assistant.Latency())
	chatSvc := chat.NewService(store, responder, signals, logger)

	// Build API router.
	apiRouter := api.NewRouter(store, chatSvc, signals, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes (including the SSE endpoint) under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Bridge store change events onto the SSE broker.
	g.Go(func() error {
		events := store.Subscribe()
		defer store.Unsubscribe(events)
		for {
			select {
			case <-gCtx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				broker.PublishStoreEvent(ev)
			}
		}
	})

	// Debounced autosave of the full snapshot.
	g.Go(func() error {
		persist.Autosave(gCtx, provider, store, cfg.Persist.AutosaveDebounce(), logger)
		return nil
	})

	// Watch the state file for external edits (file driver only).
	if file != nil {
		g.Go(func() error {
			return persist.WatchFile(gCtx, file, store, logger)
		})
	}

	// Optional MCP surface over stdio.
	if cfg.MCP.Enabled {
		g.Go(func() error {
			logger.Info("Starting MCP server on stdio")
			if err := mcpserver.New(store, chatSvc).ServeStdio(); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
