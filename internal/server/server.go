package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/softstreaks/internal/api"
	"github.com/julianstephens/softstreaks/internal/config"
	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/sse"
	"github.com/julianstephens/softstreaks/internal/tracker"
)

// Options configures Run.
type Options struct {
	Tracker *tracker.Tracker
	Server  config.ServerConfig
	// WatchPath is the JSON slot file to watch for writes by other
	// processes. Empty disables watching.
	WatchPath string
	// Ready, if set, is called with the listen address once the server is starting
	Ready func(addr string)
}

// Run serves the local API until ctx is cancelled or a shutdown signal arrives.
func Run(ctx context.Context, opts Options) error {
	if opts.Tracker == nil {
		return fmt.Errorf("tracker is required")
	}

	broker := sse.NewBroker()
	defer broker.Close()
	opts.Tracker.OnChange(broker.PublishState)

	httpServer := &http.Server{
		Addr:    opts.Server.Address(),
		Handler: api.NewRouter(opts.Tracker, opts.Server.Token, broker),
	}

	g, gCtx := errgroup.WithContext(ctx)

	if opts.WatchPath != "" {
		g.Go(func() error {
			return Watch(gCtx, opts.WatchPath, constants.WatchDebounce, func() {
				if _, err := opts.Tracker.Refresh(); err != nil {
					logger.Warn("Failed to refresh state after external change", "error", err)
				}
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "auth", opts.Server.AuthEnabled())
		if opts.Ready != nil {
			opts.Ready(httpServer.Addr)
		}
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", "signal", sig.String())
		case <-gCtx.Done():
		}

		// SSE streams only end once the broker closes their channels
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// errShutdown cancels the group so the watcher stops along with the server
var errShutdown = errors.New("server shut down")
