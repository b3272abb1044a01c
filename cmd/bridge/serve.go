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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HsiangNianian/AMonItor/bridge/internal/config"
	"github.com/HsiangNianian/AMonItor/bridge/internal/i18n"
	"github.com/HsiangNianian/AMonItor/bridge/internal/logger"
	"github.com/HsiangNianian/AMonItor/bridge/internal/store"
	"github.com/HsiangNianian/AMonItor/bridge/internal/ws"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept host page sessions and route integration messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configFile == "" {
				configFile = os.Getenv("CONFIG_FILE")
			}
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("init logger failed: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	var st store.Store
	if cfg.Store.RedisAddr != "" {
		rs := store.NewRedisStore(cfg.Store.RedisAddr)
		defer func() { _ = rs.Close() }()
		if err := rs.Ping(ctx); err != nil {
			return fmt.Errorf("connect redis %s failed: %w", cfg.Store.RedisAddr, err)
		}
		st = rs
		log.Infow("use redis store", "addr", cfg.Store.RedisAddr)
	} else {
		st = store.NewMemoryStore()
		log.Infow("use memory store")
	}

	var (
		tr  *i18n.Service
		err error
	)
	if cfg.I18n.LocalesDir != "" {
		tr, err = i18n.NewService(os.DirFS(cfg.I18n.LocalesDir), log)
	} else {
		tr, err = i18n.NewBuiltin(log)
	}
	if err != nil {
		return fmt.Errorf("load translations failed: %w", err)
	}

	hub := ws.NewHub(st, tr, ws.Options{
		AuthToken:      cfg.Server.AuthToken,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TTL:            cfg.Store.TTL(),
	}, log)

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Server.HostPath, hub.HandleHost)
	mux.Handle(cfg.Server.MetricsPath, promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("bridge listening", "addr", cfg.Server.ListenAddr, "host_path", cfg.Server.HostPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("bridge server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Infow("shutting down", "active_sessions", hub.SessionCount())
	return srv.Shutdown(shutdownCtx)
}
