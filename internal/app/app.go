// Package app wires configuration, storage and transport into runnable
// servers: the companion server in front of the pet-care backend and the
// development backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

// App is a configured HTTP server ready to run.
type App struct {
	name            string
	addr            string
	echo            *echo.Echo
	log             zerolog.Logger
	shutdownTimeout time.Duration

	// onStart runs once the listener goroutine has been started.
	onStart func(ctx context.Context)
	closers []func(context.Context) error
}

// Handler exposes the routes of the app.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// gracefully and releases every connection the app opened.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.addr).Msgf("%s starting", a.name)
		errCh <- a.echo.Start(a.addr)
	}()

	if a.onStart != nil {
		a.onStart(ctx)
	}

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.timeout())
		defer cancel()
		if err := a.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	}
}

func (a *App) timeout() time.Duration {
	if a.shutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return a.shutdownTimeout
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn().Err(err).Msg("close dependency")
		}
	}
}
