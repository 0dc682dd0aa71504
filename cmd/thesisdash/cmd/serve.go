package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/output"
	"github.com/Aman-CERP/thesisdash/internal/server"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	host  string
	port  int
	root  string
	watch bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the project's static files so the dashboard can load
thesis_index.json in the browser.

"/" redirects to server.landing (default /dashboard/). Responses are sent
with permissive CORS and no-cache headers. With --watch the index is
rebuilt while serving whenever the manuscript changes.`,
		Example: `  thesisdash serve
  thesisdash serve --port 9090 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Listen port (overrides server.port)")
	cmd.Flags().StringVar(&opts.root, "root", "", "Directory to serve (overrides paths.serve_root)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rebuild the index when the manuscript changes")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	p, err := loadProject(".")
	if err != nil {
		return err
	}
	if opts.host != "" {
		p.cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		p.cfg.Server.Port = opts.port
	}
	if err := overridePath(&p.cfg.Paths.ServeRoot, opts.root); err != nil {
		return err
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	logger := slog.Default()
	srv, err := server.New(server.Config{
		Host:         p.cfg.Server.Host,
		Port:         p.cfg.Server.Port,
		Root:         p.serveRoot(),
		Landing:      p.cfg.Server.Landing,
		AllowOrigin:  p.cfg.Server.AllowOrigin,
		CacheControl: p.cfg.Server.CacheControl,
		MIMETypes:    p.cfg.Server.MIMETypes,
	}, logger)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())

	g, gctx := errgroup.WithContext(ctx)

	if opts.watch {
		runner, err := p.newRunner(logger)
		if err != nil {
			return err
		}
		if err := buildOnce(gctx, runner, p.outputPath(), out); err != nil {
			return err
		}
		g.Go(func() error {
			return watchManuscript(gctx, p, func(ctx context.Context) {
				if err := buildOnce(ctx, runner, p.outputPath(), out); err != nil && ctx.Err() == nil {
					logger.Error("index_rebuild_failed", errors.FormatForLog(err)...)
				}
			})
		})
	}

	out.Successf("Dashboard at http://%s%s", srv.Addr(), p.cfg.Server.Landing)

	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
