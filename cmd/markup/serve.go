package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/courseforge/markup/internal/config"
	"github.com/courseforge/markup/internal/dev"
	"github.com/courseforge/markup/internal/errors"
	"github.com/courseforge/markup/pkg/document"
	"github.com/courseforge/markup/pkg/middleware"
	"github.com/courseforge/markup/pkg/pages"
	"github.com/courseforge/markup/pkg/server"
)

type serveOptions struct {
	addr     string
	pages    string
	s3Bucket string
	s3Prefix string
	watch    bool
	minify   bool
}

func serveCmd(global *globalOptions) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a page directory or bucket over HTTP",
		Long: `Serve documents as HTML pages and JSON element trees.

Pages come from the server.pages directory, or from an S3 bucket when
s3.bucket is set. AWS credentials and region are resolved from the
environment and shared config files.

With --watch, page changes reload connected browsers and render errors
are shown in an overlay.

Examples:
  markup serve
  markup serve --addr :3000 --pages site --watch
  markup serve --s3-bucket docs --s3-prefix pages/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cfg.NewLogger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().StringVarP(&opts.pages, "pages", "p", "", "Page directory (default from config)")
	cmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "Serve pages from this S3 bucket")
	cmd.Flags().StringVar(&opts.s3Prefix, "s3-prefix", "", "Key prefix of pages in the S3 bucket")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload browsers when pages change")
	cmd.Flags().BoolVarP(&opts.minify, "minify", "m", false, "Minify HTML responses")

	return cmd
}

// apply overrides cfg with the flags set on cmd.
func (o serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = o.addr
	}
	if flags.Changed("pages") {
		cfg.Server.Pages = o.pages
	}
	if flags.Changed("s3-bucket") {
		cfg.S3.Bucket = o.s3Bucket
	}
	if flags.Changed("s3-prefix") {
		cfg.S3.Prefix = o.s3Prefix
	}
	if flags.Changed("watch") {
		cfg.Server.Watch = o.watch
	}
	if flags.Changed("minify") {
		cfg.Render.Minify = o.minify
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	srvConfig := server.Config{
		Addr:         cfg.Server.Addr,
		MaxDepth:     cfg.Render.MaxDepth,
		Minify:       cfg.Render.Minify,
		Watch:        cfg.Server.Watch,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		MetricsPath:  cfg.Metrics.Path,
	}
	if cfg.Metrics.Enabled {
		srvConfig.Metrics = middleware.NewMetrics(middleware.WithNamespace(cfg.Metrics.Namespace))
	}
	if cfg.Tracing.Enabled {
		srvConfig.Tracing = middleware.NewTracing(middleware.WithTracerName(cfg.Tracing.TracerName))
	}

	srv := server.New(srvConfig, store, document.NewRegistry(), logger)

	if cfg.Server.Watch {
		dir, ok := store.(*pages.DirStore)
		if !ok {
			return errors.Newf(errors.CategoryCLI, "watch mode needs a page directory").
				WithSuggestion("Remove --watch or --s3-bucket")
		}
		paths := []string{dir.Root()}
		if cfgDir := cfg.Dir(); cfgDir != "" {
			paths = append(paths, cfgDir)
		}
		watcher, err := dev.NewWatcher(dev.WatcherConfig{Paths: paths, Logger: logger})
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Watch(ctx, watcher); err != nil && ctx.Err() == nil {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	return srv.ListenAndServe(ctx)
}

// openStore returns the S3 store when a bucket is configured and the page
// directory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (pages.Store, error) {
	if !cfg.UsesS3() {
		return pages.NewDirStore(cfg.PagesPath())
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New(errors.CodeStoreFailure).WithDetail("loading AWS configuration").Wrap(err)
	}
	return pages.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix), nil
}
