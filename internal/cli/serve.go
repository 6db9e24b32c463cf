package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/api"
	"github.com/piwi3910/floorplan/internal/cache"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if listen != "" {
				cfg.Listen = listen
			}
			if redisURL != "" {
				cfg.RedisURL = redisURL
			}
			if noCache {
				cfg.CacheTTLSeconds = -1
			}

			store, err := cache.New(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			if rc, ok := store.(*cache.RedisCache); ok {
				if err := rc.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("redis unreachable: %w", err)
				}
			}

			server := &http.Server{
				Addr:              cfg.Listen,
				Handler:           api.NewRouter(store, cfg, c.Logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				c.Logger.Info("server starting", "listen", cfg.Listen, "cache", fmt.Sprintf("%T", store))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			c.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			c.Logger.Info("shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the shared result cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	return cmd
}
