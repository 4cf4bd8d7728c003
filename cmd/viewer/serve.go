package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/httpserver"
	"finitefield.org/product-viewer/internal/viewer/httpserver/middleware"
)

type serveOptions struct {
	addr     string
	basePath string
	watch    bool
}

func (a *app) serveCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP product browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("watch") {
				opts.watch = a.cfg.Data.Watch
			}
			return a.runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides VIEWER_HTTP_ADDR)")
	cmd.Flags().StringVar(&opts.basePath, "base-path", "", "URL prefix of the browser (overrides VIEWER_BASE_PATH)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload when snapshot files change (overrides VIEWER_DATA_WATCH)")
	return cmd
}

func (a *app) runServe(parent context.Context, opts serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	addr := firstNonEmpty(opts.addr, a.cfg.Server.Addr)
	basePath := firstNonEmpty(opts.basePath, a.cfg.Server.BasePath)
	watch := opts.watch

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := a.newSession()
	if watch {
		watcher, err := catalog.NewWatcher(session, a.cfg.Data.Dir, catalog.WithWatchLogger(a.logger))
		if err != nil {
			a.logger.Warn("snapshot watcher disabled", zap.String("dir", a.cfg.Data.Dir), zap.Error(err))
		} else {
			watcher.Start(ctx)
			defer watcher.Close()
		}
	}
	if a.cfg.Cookie.Generated {
		a.logger.Info("VIEWER_COOKIE_HASH_KEY not set; filter preferences reset on restart")
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:  addr,
		BasePath: basePath,
		DataDir:  a.cfg.Data.Dir,
		Session:  session,
		Logger:   a.logger,
		Preferences: middleware.PreferencesConfig{
			CookieName: a.cfg.Cookie.Name,
			HashKey:    a.cfg.Cookie.HashKey,
			Secure:     a.cfg.Cookie.Secure,
		},
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	a.logger.Info("viewer listening",
		zap.String("addr", addr),
		zap.String("base_path", basePath),
		zap.String("data_dir", a.cfg.Data.Dir),
		zap.Bool("watch", watch),
	)

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("http server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	a.logger.Info("viewer stopped")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
