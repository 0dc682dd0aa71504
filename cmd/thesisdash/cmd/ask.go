package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/thesisdash/internal/output"
	"github.com/Aman-CERP/thesisdash/internal/search"
)

func newAskCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
		indexPath  string
	)

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Find the passages that best answer a question",
		Long: `Rank the index passages against a question the same way the
dashboard does: tf-idf weighted cosine similarity, best first, ties in
document order. Passages sharing no terms with the question are omitted.`,
		Example: `  thesisdash ask "how were participants recruited"
  thesisdash ask --limit 10 --json delirium screening`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(".")
			if err != nil {
				return err
			}
			if err := overridePath(&p.cfg.Paths.Output, indexPath); err != nil {
				return err
			}

			searcher, err := p.indexFile().Searcher()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results, err := searcher.Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(results)
			}

			out := output.New(cmd.OutOrStdout())
			if len(results) == 0 {
				out.Warningf("No passages matched %q", query)
				return nil
			}
			for i, r := range results {
				if i > 0 {
					out.Newline()
				}
				out.Result(r.Rank, r.Score, resultTitle(r), r.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "Maximum number of passages")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&indexPath, "output", "", "Index file to read (overrides paths.output)")

	return cmd
}

// resultTitle is "id" or "id · section".
func resultTitle(r search.Result) string {
	if r.Section == nil || *r.Section == "" {
		return r.ID
	}
	return r.ID + " · " + *r.Section
}
