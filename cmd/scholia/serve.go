package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/scholia/internal/api"
	"github.com/alexanderramin/scholia/internal/config"
	"github.com/alexanderramin/scholia/internal/digest"
	"github.com/alexanderramin/scholia/internal/metrics"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serve runs the HTTP API, and the focus digest when scheduled, until ctx
// is cancelled.
func serve(ctx context.Context, cfg config.Config, svc api.Services, log *zap.Logger, m *metrics.Metrics) error {
	if err := cfg.RequireSecret(); err != nil {
		return err
	}

	if cfg.Focus.DigestSchedule != "" {
		d, err := digest.New(svc.Focus, log, cfg.Focus.DigestSchedule)
		if err != nil {
			return err
		}
		d.Start(ctx)
		defer d.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewServer(svc, log, m).Routes(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("http_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
