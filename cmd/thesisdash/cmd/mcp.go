package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/thesisdash/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	var indexPath string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio",
		Long: `Expose the thesis index to MCP clients over stdio with two tools:

  ask_thesis     rank passages for a question
  index_status   report whether the index exists and what it holds

The index file is reloaded when it changes, so 'thesisdash index --watch'
can run alongside. Logs go to ~/.thesisdash/logs/ because stdout is
reserved for the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := loadProject(".")
			if err != nil {
				return err
			}
			if err := overridePath(&p.cfg.Paths.Output, indexPath); err != nil {
				return err
			}

			srv, err := mcp.NewServer(p.indexFile(), nil)
			if err != nil {
				return err
			}
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&indexPath, "output", "", "Index file to serve (overrides paths.output)")

	return cmd
}
