package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/thesisdash/internal/errors"
	"github.com/Aman-CERP/thesisdash/internal/index"
	"github.com/Aman-CERP/thesisdash/internal/loader"
	"github.com/Aman-CERP/thesisdash/internal/output"
	"github.com/Aman-CERP/thesisdash/internal/watcher"
)

type indexOptions struct {
	manuscript string
	output     string
	noDocx     bool
	watch      bool
}

func newIndexCmd() *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Build the thesis index from the manuscript",
		Long: `Build the passage index from every .md, .txt and .docx file directly
inside the manuscript directory.

Each paragraph of five or more words becomes a passage with term
frequencies; inverse document frequencies are computed over all passages.
Unreadable or unparsable files are skipped with a warning. The command
only fails when the index file cannot be written.

With --watch the manuscript directory is watched after the first build
and the index is rebuilt from scratch after every burst of changes.`,
		Example: `  # Build using .thesisdash.yaml from the current project
  thesisdash index

  # Build a different project without .docx support
  thesisdash index ~/thesis --no-docx

  # Keep the index fresh while writing
  thesisdash index --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runIndex(ctx, cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.manuscript, "manuscript", "", "Manuscript directory (overrides paths.manuscript)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Index file to write (overrides paths.output)")
	cmd.Flags().BoolVar(&opts.noDocx, "no-docx", false, "Skip .docx files as if no parser were available")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Rebuild whenever the manuscript changes")

	cmd.AddCommand(newIndexInfoCmd())

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, path string, opts indexOptions) error {
	p, err := loadProject(path)
	if err != nil {
		return err
	}
	if err := overridePath(&p.cfg.Paths.Manuscript, opts.manuscript); err != nil {
		return err
	}
	if err := overridePath(&p.cfg.Paths.Output, opts.output); err != nil {
		return err
	}
	if opts.noDocx {
		disabled := false
		p.cfg.Index.Docx = &disabled
	}

	logger := slog.Default()
	runner, err := p.newRunner(logger)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if err := buildOnce(ctx, runner, p.outputPath(), out); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}

	out.Statusf("👀", "Watching %s (Ctrl+C to stop)", p.manuscriptDir())
	return watchManuscript(ctx, p, func(ctx context.Context) {
		err := buildOnce(ctx, runner, p.outputPath(), out)
		if err == nil || ctx.Err() != nil {
			return
		}
		// Keep watching; the next edit may fix an unwritable output.
		level := slog.LevelWarn
		if errors.IsFatal(err) {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "index_rebuild_failed", errors.FormatForLog(err)...)
	})
}

// buildOnce runs one full build and prints its summary.
func buildOnce(ctx context.Context, runner *index.Runner, outputPath string, out *output.Writer) error {
	result, err := runner.Run(ctx, outputPath)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		out.Error("Index not written")
		return err
	}

	if result.Passages == 0 {
		out.Warning("No passages extracted; wrote an empty index")
	} else {
		out.Successf("Indexed %d passages from %d files", result.Passages, result.Files)
	}
	out.KeyValue("Terms", result.Terms)
	out.KeyValue("Output", result.Output)
	out.KeyValue("Took", result.Duration.Round(time.Millisecond))
	return nil
}

// watchManuscript calls rebuild after every debounced batch of manuscript
// changes until ctx is cancelled.
func watchManuscript(ctx context.Context, p *project, rebuild func(context.Context)) error {
	w := watcher.New(p.manuscriptDir(), watcher.Options{
		Debounce: p.cfg.DebounceDuration(),
		Filter:   loader.IsRecognized,
		Logger:   slog.Default(),
	})

	err := w.Run(ctx, func(ctx context.Context, batch []watcher.FileEvent) {
		for _, ev := range batch {
			slog.Info("manuscript_changed",
				slog.String("file", ev.Path),
				slog.String("op", ev.Operation.String()))
		}
		rebuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
