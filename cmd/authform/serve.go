package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/internal/metrics"
	"github.com/goliatone/go-authform/internal/server"
	"github.com/goliatone/go-authform/internal/watch"
	"github.com/goliatone/go-authform/pkg/openapi"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr      string
		templates string
		watchDir  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-in and sign-up pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("templates") {
				a.cfg.Templates.Dir = templates
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Templates.Watch = watchDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&templates, "templates", "", "template directory overriding the embedded templates")
	cmd.Flags().BoolVar(&watchDir, "watch", false, "reload templates when files in the template directory change")
	return cmd
}

// handler assembles the HTTP handler and the renderer registry from the
// loaded configuration.
func (a *app) handler(ctx context.Context) (*server.Server, func(), error) {
	cfg := a.cfg
	logger := a.log()

	overrides, err := iconOverrides(cfg.Assets.IconsDir)
	if err != nil {
		return nil, nil, err
	}
	set, err := iconSet(overrides)
	if err != nil {
		return nil, nil, err
	}
	registry, err := renderers(cfg, set)
	if err != nil {
		return nil, nil, err
	}
	selector, err := themeSelector(cfg)
	if err != nil {
		return nil, nil, err
	}

	pageRegistry := authform.Pages()
	doc, err := openapi.Build(ctx, pageRegistry.All(),
		openapi.WithVersion(Version),
	)
	if err != nil {
		return nil, nil, err
	}

	options := []server.Option{
		server.WithLogger(logger),
		server.WithPages(pageRegistry),
		server.WithRenderers(registry),
		server.WithTheme(selector, cfg.Theme.Name, cfg.Theme.Variant),
		server.WithIcons(icons.New(
			icons.WithRoutePath(cfg.Assets.IconsPath),
			icons.WithIcons(overrides),
		)),
		server.WithRuntimeAssets(authform.RuntimeAssetsFS(), cfg.Assets.RuntimePath),
		server.WithOpenAPI(doc),
	}
	if cfg.Server.Metrics {
		options = append(options, server.WithMetrics(metrics.New()))
	}

	srv, err := server.New(options...)
	if err != nil {
		return nil, nil, err
	}
	return srv, func() { resetTemplates(registry) }, nil
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := a.log()

	handler, reload, err := a.handler(ctx)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("serve: listen %s: %w", cfg.Server.Addr, err)
	}
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		logger.Info("shutting down", zap.Duration("grace", cfg.Server.ShutdownGrace))
		return httpServer.Shutdown(shutdownCtx)
	})

	if cfg.Templates.Watch {
		if cfg.Templates.Dir == "" {
			logger.Warn("template watch requested without a template directory")
		} else {
			watcher, err := watch.New(cfg.Templates.Dir, reload,
				watch.WithDebounce(cfg.Templates.Debounce),
				watch.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			g.Go(func() error {
				return watcher.Run(gctx)
			})
		}
	}

	return g.Wait()
}
