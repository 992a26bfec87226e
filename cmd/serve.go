package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/closed-loop/citymap/internal/datasource"
	"github.com/closed-loop/citymap/internal/fetcher"
	"github.com/closed-loop/citymap/internal/layer"
	"github.com/closed-loop/citymap/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the data endpoints and the map page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		var registry *datasource.Registry
		var src fetcher.Fetcher
		if cfg.Upstream.BaseURL != "" {
			upstream, err := newUpstream(cfg)
			if err != nil {
				return err
			}
			src = upstream
			zap.L().Info("loading layers from upstream", zap.String("base_url", cfg.Upstream.BaseURL))
		} else {
			registry = newRegistry(cfg)
			src = registry
			zap.L().Info("serving local datasets", zap.Strings("endpoints", registry.Endpoints()))
		}

		ctrl := layer.NewController()
		report := layer.NewLoader(src, ctrl, loadTimeout(cfg)).Load(ctx)
		for _, res := range report.Failed() {
			zap.L().Warn("layer unavailable",
				zap.String("layer", string(res.Layer)),
				zap.String("class", res.Class),
				zap.String("error", res.Error),
			)
		}

		server, err := web.New(registry, ctrl, web.Options{
			Map:            mapView(cfg),
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           server.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("load_id", report.LoadID),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
