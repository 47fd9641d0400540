package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phytogl/phytogl/internal/api"
	"github.com/phytogl/phytogl/internal/asset"
	"github.com/phytogl/phytogl/internal/auth"
	"github.com/phytogl/phytogl/internal/config"
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/store"
	"github.com/phytogl/phytogl/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	scenes := store.New(pool)
	if err := scenes.Migrate(ctx); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	library := asset.NewLibrary(cfg.AssetDir, asset.DefaultTextureSize)
	service := api.NewService(scenes, library, api.Settings{
		ImageWidth:  cfg.ImageWidth,
		ImageHeight: cfg.ImageHeight,
		Workers:     cfg.Workers,
		Discretize: []discretize.Option{
			discretize.WithStride(cfg.CurveStride),
			discretize.WithSlices(cfg.SurfaceSlices),
		},
	})

	// Projection jobs started from websocket clients outlive the request
	// that started them, so they run on the server context.
	var hub *stream.Hub
	hub = stream.NewHub(func(sceneID, clientID string) {
		slog.Info("projection job requested", "scene", sceneID, "client", clientID)
		go service.StreamProjection(ctx, sceneID, hub)
	})
	go hub.Run(ctx)

	handler := api.NewRouter(api.Routes{
		Scenes:    api.NewHandler(service),
		Auth:      auth.NewService(cfg.JWTSecret),
		Assets:    asset.NewHandler(library),
		Hub:       hub,
		Origins:   cfg.AllowedOriginList(),
		WSOrigins: cfg.Origins(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
