// ABOUTME: "serve" command: runs the HTTP server until SIGINT or SIGTERM.
// ABOUTME: In live-reload mode a watcher polls the content directory and notifies connected browsers.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/2389-research/coursesite/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides COURSESITE_ADDR)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	logger := a.cfg.Logger()
	logger.WithFields(logrus.Fields{
		"environment": a.cfg.Environment,
		"routes":      len(a.site.Table.Paths()),
		"live_reload": a.cfg.LiveReload,
	}).Info("starting course site")

	srv, err := web.NewServer(web.ServerConfig{
		Addr:       a.cfg.Addr,
		Site:       a.site,
		Logger:     logger,
		LiveReload: a.cfg.LiveReload,
	})
	if err != nil {
		return err
	}

	if hub := srv.Hub(); hub != nil {
		if a.site.Docs.Trusted() {
			logger.Info("content is embedded; live reload will not fire on edits")
		} else {
			w := web.NewWatcher(a.site.Docs, hub, a.cfg.ReloadInterval, logger)
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.WithError(err).Error("content watcher stopped")
				}
			}()
		}
	}

	return srv.ListenAndServe(ctx)
}
